package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haniscreator/mediclue/internal/catalog"
	"github.com/haniscreator/mediclue/internal/engine"
	"github.com/haniscreator/mediclue/internal/middleware"
	"github.com/haniscreator/mediclue/internal/repository"
)

// RegisterSymptomRoutes attaches catalog search routes. Each search is
// recorded through analytics; recording failures are only logged.
func RegisterSymptomRoutes(r gin.IRouter, cat *catalog.Catalog, analytics repository.AnalyticsRepo) {
	r.GET("/v1/symptoms/search", func(c *gin.Context) {
		q := c.Query("q")
		excluded := c.QueryArray("exclude")

		results := engine.Search(q, cat.Symptoms, excluded)

		if analytics != nil {
			uid := c.GetString(middleware.KeyUserID)
			if err := analytics.LogSearch(c.Request.Context(), uid, q, excluded, len(results)); err != nil {
				logger().Warn("audit log failed", "user", uid, "error", err)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"query":   q,
			"count":   len(results),
			"results": results,
		})
	})

	r.GET("/v1/symptoms/quick", func(c *gin.Context) {
		out := make([]catalog.Symptom, 0, len(cat.QuickAdd))
		for _, name := range cat.QuickAdd {
			if s, ok := cat.Lookup(name); ok {
				out = append(out, s)
			}
		}
		c.JSON(http.StatusOK, gin.H{"results": out})
	})
}
