package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haniscreator/mediclue/internal/assessment"
	"github.com/haniscreator/mediclue/internal/logging"
	"github.com/haniscreator/mediclue/internal/middleware"
	"github.com/haniscreator/mediclue/internal/session"
)

// logger is resolved per call so it follows logging.Init.
func logger() *slog.Logger { return logging.New("handler") }

// internalError logs err and answers 500 without leaking details.
func internalError(c *gin.Context, op string, err error) {
	logger().Error(op+" failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
}

// userID returns the authenticated user, answering 401 when absent.
func userID(c *gin.Context) (string, bool) {
	id := c.GetString(middleware.KeyUserID)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user in token"})
		return "", false
	}
	return id, true
}

// assessmentError maps session and state machine errors to responses.
func assessmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
	case errors.Is(err, assessment.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, assessment.ErrNoSymptoms),
		errors.Is(err, assessment.ErrUnknownSymptom),
		errors.Is(err, assessment.ErrInvalidAge),
		errors.Is(err, assessment.ErrInvalidGender),
		errors.Is(err, assessment.ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "analysis interrupted"})
	default:
		internalError(c, "assessment", err)
	}
}
