package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/haniscreator/mediclue/internal/directory"
)

// HospitalService is the directory lookup the handler needs.
type HospitalService interface {
	Find(ctx context.Context, q directory.Query) []directory.Hospital
	Specialties(ctx context.Context) []string
}

// RegisterHospitalRoutes attaches hospital directory routes.
func RegisterHospitalRoutes(r gin.IRouter, svc HospitalService) {
	r.GET("/v1/hospitals", func(c *gin.Context) {
		q := directory.Query{
			Term:      c.Query("q"),
			Specialty: c.Query("specialty"),
			Nearby:    strings.EqualFold(c.Query("sort"), "nearby"),
		}
		results := svc.Find(c.Request.Context(), q)
		c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
	})

	r.GET("/v1/hospitals/specialties", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"specialties": svc.Specialties(c.Request.Context())})
	})
}
