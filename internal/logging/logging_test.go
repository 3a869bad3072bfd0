package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_HasComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelDebug, "text", &buf)

	New("assessment").Info("scored", "predictions", 2)

	out := buf.String()
	assert.Contains(t, out, "component=assessment")
	assert.Contains(t, out, "predictions=2")
}

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelInfo, "json", &buf)

	New("auth").Info("login")

	assert.Contains(t, buf.String(), `"component":"auth"`)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}

func TestInit_LevelGating(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelWarn, "text", &buf)

	logger := New("gate")
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
