package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/haniscreator/mediclue/internal/logging"
)

// Context keys set by AuthMiddleware.
const (
	KeyUserID    = "user_id"
	KeyEmail     = "email"
	KeyFirstName = "first_name"
)

// AuthMiddleware returns a Gin middleware that validates a JWT Bearer token.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSecret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		ah := c.GetHeader("Authorization")
		if ah == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(ah, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenUnverifiable
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		c.Set(KeyUserID, sub)
		if email, ok := claims["email"].(string); ok {
			c.Set(KeyEmail, email)
		}
		if name, ok := claims["first_name"].(string); ok {
			c.Set(KeyFirstName, name)
		}

		c.Next()
	}
}

// ProfileChecker reports whether a user has completed their profile.
type ProfileChecker interface {
	IsCompleted(ctx context.Context, userID string) (bool, error)
}

// RequireProfile blocks users whose profile is not completed. It must run
// after AuthMiddleware.
func RequireProfile(checker ProfileChecker) gin.HandlerFunc {
	log := logging.New("middleware")
	return func(c *gin.Context) {
		userID := c.GetString(KeyUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user in token"})
			return
		}
		done, err := checker.IsCompleted(c.Request.Context(), userID)
		if err != nil {
			log.Error("profile check failed", "user", userID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal"})
			return
		}
		if !done {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "profile incomplete", "redirect": "/v1/profile"})
			return
		}
		c.Next()
	}
}
