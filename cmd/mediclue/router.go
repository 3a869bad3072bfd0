package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/haniscreator/mediclue/internal/catalog"
	"github.com/haniscreator/mediclue/internal/config"
	"github.com/haniscreator/mediclue/internal/handler"
	"github.com/haniscreator/mediclue/internal/middleware"
	"github.com/haniscreator/mediclue/internal/repository"
	"github.com/haniscreator/mediclue/internal/service"
)

// maxBodyBytes caps request bodies; every JSON payload is small.
const maxBodyBytes = 1 << 20

// app holds the wired services the router exposes.
type app struct {
	cfg         config.Config
	catalog     *catalog.Catalog
	auth        service.AuthService
	profiles    service.ProfileService
	assessments *service.AssessmentService
	results     *service.ResultService
	hospitals   *service.HospitalService
	analytics   repository.AnalyticsRepo
	ready       func(context.Context) error
}

func newRouter(a *app) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Logger(),
		gin.Recovery(),
		limitBodySize(maxBodyBytes),
		cors.New(corsConfig(a.cfg.CORSOrigins)),
	)

	r.GET("/health", healthHandler)
	r.GET("/readyz", readyHandler(a.ready))

	handler.RegisterAuthRoutes(r, a.auth, a.cfg.JWTSecret, a.cfg.JWTExpires)

	authGroup := r.Group("/")
	authGroup.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
	handler.RegisterProfileRoutes(authGroup, a.profiles)

	// symptom checker, results and hospitals need a completed profile
	profileGroup := authGroup.Group("/")
	profileGroup.Use(middleware.RequireProfile(a.profiles))
	handler.RegisterSymptomRoutes(profileGroup, a.catalog, a.analytics)
	handler.RegisterAssessmentRoutes(profileGroup, a.assessments)
	handler.RegisterResultRoutes(profileGroup, a.results)
	handler.RegisterHospitalRoutes(profileGroup, a.hospitals)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(ready func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ready(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
