package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haniscreator/mediclue/internal/assessment"
	"github.com/haniscreator/mediclue/internal/catalog"
)

// AssessmentService is the minimal service interface the handler needs.
type AssessmentService interface {
	Start(ctx context.Context, userID string) (assessment.View, error)
	Get(userID, id string) (assessment.View, error)
	AddSymptom(userID, id, name string) (assessment.View, error)
	RemoveSymptom(userID, id, name string) (assessment.View, error)
	Next(userID, id string) (assessment.View, error)
	Back(userID, id string) (assessment.View, error)
	SetDetails(userID, id string, d assessment.Details) (assessment.View, error)
	Suggest(userID, id, query string) ([]catalog.Symptom, error)
	Submit(ctx context.Context, userID, id string) (*assessment.Result, error)
	Cancel(userID, id string) error
}

type addSymptomReq struct {
	Name string `json:"name" binding:"required"`
}

// RegisterAssessmentRoutes attaches the symptom checker wizard routes.
func RegisterAssessmentRoutes(r gin.IRouter, svc AssessmentService) {
	// respond runs fn for the caller's session and writes the new view.
	respond := func(c *gin.Context, fn func(uid, id string) (assessment.View, error)) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		v, err := fn(uid, c.Param("id"))
		if err != nil {
			assessmentError(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}

	r.POST("/v1/assessments", func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		v, err := svc.Start(c.Request.Context(), uid)
		if err != nil {
			assessmentError(c, err)
			return
		}
		c.JSON(http.StatusCreated, v)
	})

	r.GET("/v1/assessments/:id", func(c *gin.Context) {
		respond(c, svc.Get)
	})

	r.DELETE("/v1/assessments/:id", func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		if err := svc.Cancel(uid, c.Param("id")); err != nil {
			assessmentError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	r.POST("/v1/assessments/:id/symptoms", func(c *gin.Context) {
		var req addSymptomReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "detail": err.Error()})
			return
		}
		respond(c, func(uid, id string) (assessment.View, error) {
			return svc.AddSymptom(uid, id, req.Name)
		})
	})

	r.DELETE("/v1/assessments/:id/symptoms/:name", func(c *gin.Context) {
		respond(c, func(uid, id string) (assessment.View, error) {
			return svc.RemoveSymptom(uid, id, c.Param("name"))
		})
	})

	r.GET("/v1/assessments/:id/suggestions", func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		out, err := svc.Suggest(uid, c.Param("id"), c.Query("q"))
		if err != nil {
			assessmentError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": out})
	})

	r.POST("/v1/assessments/:id/next", func(c *gin.Context) {
		respond(c, svc.Next)
	})

	r.POST("/v1/assessments/:id/back", func(c *gin.Context) {
		respond(c, svc.Back)
	})

	r.PUT("/v1/assessments/:id/details", func(c *gin.Context) {
		var req assessment.Details
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "detail": err.Error()})
			return
		}
		respond(c, func(uid, id string) (assessment.View, error) {
			return svc.SetDetails(uid, id, req)
		})
	})

	r.POST("/v1/assessments/:id/submit", func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		res, err := svc.Submit(c.Request.Context(), uid, c.Param("id"))
		if err != nil {
			assessmentError(c, err)
			return
		}
		c.JSON(http.StatusCreated, resultToResp(res))
	})
}
