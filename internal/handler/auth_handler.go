package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haniscreator/mediclue/internal/service"
)

// DTOs
type registerReq struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// RegisterAuthRoutes registers account register/login routes.
func RegisterAuthRoutes(r gin.IRouter, authSvc service.AuthService, jwtSecret string, expires time.Duration) {
	r.POST("/auth/register", func(c *gin.Context) {
		var req registerReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "detail": err.Error()})
			return
		}

		u, err := authSvc.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrWeakPassword):
				c.JSON(http.StatusBadRequest, gin.H{"error": "weak password"})
			case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrMissingName):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, service.ErrUserExists):
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			default:
				internalError(c, "register", err)
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":         u.ID,
			"email":      u.Email,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
		})
	})

	r.POST("/auth/login", func(c *gin.Context) {
		var req loginReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "detail": err.Error()})
			return
		}
		if jwtSecret == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		token, err := authSvc.Authenticate(c.Request.Context(), req.Email, req.Password, jwtSecret, expires)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidCreds):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			default:
				internalError(c, "login", err)
			}
			return
		}

		c.JSON(http.StatusOK, tokenResp{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(expires.Seconds()),
		})
	})
}
