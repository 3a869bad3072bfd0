package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "JWT_SECRET", "JWT_EXPIRES_SECONDS", "SESSION_TTL",
		"SCORING_DELAY", "EXACT_MATCH", "HOSPITAL_BASE", "CORS_ORIGINS", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, defaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, time.Hour, cfg.JWTExpires)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 2*time.Second, cfg.ScoringDelay)
	assert.False(t, cfg.ExactMatch)
	assert.Empty(t, cfg.HospitalBase)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRES_SECONDS", "120")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("SCORING_DELAY", "0")
	t.Setenv("EXACT_MATCH", "yes")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://mediclue.app,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Minute, cfg.JWTExpires)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, time.Duration(0), cfg.ScoringDelay)
	assert.True(t, cfg.ExactMatch)
	assert.Equal(t, []string{"http://localhost:5173", "https://mediclue.app"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestGetHelpers_BadValues(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")
	assert.Equal(t, 7, GetInt("X_INT", 7))
	assert.True(t, GetBool("X_BOOL", true))
	assert.Equal(t, time.Second, GetDuration("X_DUR", time.Second))
	assert.Equal(t, 90*time.Second, func() time.Duration {
		t.Setenv("X_DUR", "90")
		return GetDuration("X_DUR", 0)
	}())
}

func TestLoadDotEnv(t *testing.T) {
	found, err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
	assert.False(t, found)

	path := filepath.Join(t.TempDir(), "test.env")
	assert.NoError(t, os.WriteFile(path, []byte("MEDICLUE_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("MEDICLUE_TEST_VALUE", "")
	os.Unsetenv("MEDICLUE_TEST_VALUE")

	found, err = LoadDotEnv(path)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "from-file", os.Getenv("MEDICLUE_TEST_VALUE"))
	os.Unsetenv("MEDICLUE_TEST_VALUE")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
