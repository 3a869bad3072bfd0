package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/haniscreator/mediclue/internal/assessment"
	"github.com/haniscreator/mediclue/internal/engine"
)

// ResultService is the minimal read interface the handler needs.
type ResultService interface {
	Get(ctx context.Context, userID, id string) (*assessment.Result, error)
	Latest(ctx context.Context, userID string) (*assessment.Result, error)
	List(ctx context.Context, userID string, limit int) ([]*assessment.Result, error)
}

type predictionResp struct {
	engine.Prediction
	// FindSpecialist links to the hospital directory filtered by the
	// prediction's specialist.
	FindSpecialist string `json:"find_specialist"`
}

type resultResp struct {
	*assessment.Result
	Predictions []predictionResp `json:"predictions"`
}

func resultToResp(r *assessment.Result) resultResp {
	out := resultResp{Result: r, Predictions: make([]predictionResp, 0, len(r.Predictions))}
	for _, p := range r.Predictions {
		out.Predictions = append(out.Predictions, predictionResp{
			Prediction:     p,
			FindSpecialist: "/v1/hospitals?specialty=" + url.QueryEscape(p.Data.Specialist),
		})
	}
	return out
}

// RegisterResultRoutes attaches stored result routes.
func RegisterResultRoutes(r gin.IRouter, svc ResultService) {
	r.GET("/v1/results", func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		limit, _ := strconv.Atoi(c.Query("limit"))
		results, err := svc.List(c.Request.Context(), uid, limit)
		if err != nil {
			internalError(c, "list results", err)
			return
		}
		out := make([]resultResp, 0, len(results))
		for _, res := range results {
			out = append(out, resultToResp(res))
		}
		c.JSON(http.StatusOK, gin.H{"count": len(out), "results": out})
	})

	r.GET("/v1/results/latest", func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		res, err := svc.Latest(c.Request.Context(), uid)
		writeResult(c, res, err)
	})

	r.GET("/v1/results/:id", func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		res, err := svc.Get(c.Request.Context(), uid, c.Param("id"))
		writeResult(c, res, err)
	})
}

func writeResult(c *gin.Context, res *assessment.Result, err error) {
	if err != nil {
		internalError(c, "get result", err)
		return
	}
	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
		return
	}
	c.JSON(http.StatusOK, resultToResp(res))
}
