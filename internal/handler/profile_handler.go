package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haniscreator/mediclue/internal/repository"
	"github.com/haniscreator/mediclue/internal/service"
)

type profileResp struct {
	DateOfBirth       *string    `json:"date_of_birth"`
	Gender            *string    `json:"gender"`
	HeightCm          *float64   `json:"height_cm"`
	WeightKg          *float64   `json:"weight_kg"`
	BloodType         *string    `json:"blood_type"`
	PhoneNumber       *string    `json:"phone_number"`
	EmergencyContact  *string    `json:"emergency_contact"`
	EmergencyPhone    *string    `json:"emergency_phone"`
	Address           *string    `json:"address"`
	City              *string    `json:"city"`
	State             *string    `json:"state"`
	ZipCode           *string    `json:"zip_code"`
	MedicalConditions *string    `json:"medical_conditions"`
	Allergies         *string    `json:"allergies"`
	Medications       *string    `json:"medications"`
	ProfileCompleted  bool       `json:"profile_completed"`
	CompletedAt       *time.Time `json:"profile_completed_at"`
}

func profileToResp(p *repository.Profile) profileResp {
	return profileResp{
		DateOfBirth:       p.DateOfBirth,
		Gender:            p.Gender,
		HeightCm:          p.HeightCm,
		WeightKg:          p.WeightKg,
		BloodType:         p.BloodType,
		PhoneNumber:       p.PhoneNumber,
		EmergencyContact:  p.EmergencyContact,
		EmergencyPhone:    p.EmergencyPhone,
		Address:           p.Address,
		City:              p.City,
		State:             p.State,
		ZipCode:           p.ZipCode,
		MedicalConditions: p.MedicalConditions,
		Allergies:         p.Allergies,
		Medications:       p.Medications,
		ProfileCompleted:  p.Completed,
		CompletedAt:       p.CompletedAt,
	}
}

// RegisterProfileRoutes attaches profile routes (expects AuthMiddleware).
func RegisterProfileRoutes(r gin.IRouter, svc service.ProfileService) {
	r.GET("/v1/profile", func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		p, err := svc.Get(c.Request.Context(), uid)
		if err != nil {
			internalError(c, "get profile", err)
			return
		}
		c.JSON(http.StatusOK, profileToResp(p))
	})

	r.PUT("/v1/profile", func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		var req service.ProfileUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "detail": err.Error()})
			return
		}
		p, err := svc.Update(c.Request.Context(), uid, req)
		if err != nil {
			if errors.Is(err, service.ErrInvalidProfile) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			internalError(c, "update profile", err)
			return
		}
		c.JSON(http.StatusOK, profileToResp(p))
	})

	r.POST("/v1/profile/complete", func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		p, err := svc.Complete(c.Request.Context(), uid)
		if err != nil {
			var inc *service.IncompleteError
			if errors.As(err, &inc) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":   "profile incomplete",
					"step":    inc.Step,
					"missing": inc.Missing,
				})
				return
			}
			internalError(c, "complete profile", err)
			return
		}
		c.JSON(http.StatusOK, profileToResp(p))
	})
}
