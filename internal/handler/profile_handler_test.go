package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haniscreator/mediclue/internal/repository"
	"github.com/haniscreator/mediclue/internal/service"
)

// mockProfiles implements service.ProfileService.
type mockProfiles struct {
	profile     *repository.Profile
	lastUpdate  service.ProfileUpdate
	completeErr error
	err         error
}

func (m *mockProfiles) Get(_ context.Context, userID string) (*repository.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.profile == nil {
		return &repository.Profile{UserID: userID}, nil
	}
	return m.profile, nil
}

func (m *mockProfiles) Update(_ context.Context, userID string, u service.ProfileUpdate) (*repository.Profile, error) {
	m.lastUpdate = u
	if m.err != nil {
		return nil, m.err
	}
	return &repository.Profile{UserID: userID, City: u.City}, nil
}

func (m *mockProfiles) Complete(_ context.Context, userID string) (*repository.Profile, error) {
	if m.completeErr != nil {
		return nil, m.completeErr
	}
	return &repository.Profile{UserID: userID, Completed: true}, nil
}

func (m *mockProfiles) IsCompleted(context.Context, string) (bool, error) {
	return m.profile != nil && m.profile.Completed, nil
}

func TestProfile_Get(t *testing.T) {
	r := newTestRouter("u1")
	RegisterProfileRoutes(r, &mockProfiles{})

	w := doJSON(r, http.MethodGet, "/v1/profile", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	decode(t, w, &body)
	assert.Equal(t, false, body["profile_completed"])
	assert.Nil(t, body["date_of_birth"])
}

func TestProfile_RequiresUser(t *testing.T) {
	r := newTestRouter("")
	RegisterProfileRoutes(r, &mockProfiles{})

	w := doJSON(r, http.MethodGet, "/v1/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfile_Update(t *testing.T) {
	m := &mockProfiles{}
	r := newTestRouter("u1")
	RegisterProfileRoutes(r, m)

	w := doJSON(r, http.MethodPut, "/v1/profile", `{"city":"Springfield","height_cm":172.5}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"city":"Springfield"`)
	if assert.NotNil(t, m.lastUpdate.HeightCm) {
		assert.Equal(t, 172.5, *m.lastUpdate.HeightCm)
	}
	assert.Nil(t, m.lastUpdate.Gender)

	m.err = errors.Join(service.ErrInvalidProfile, errors.New("gender"))
	w = doJSON(r, http.MethodPut, "/v1/profile", `{"gender":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfile_Complete(t *testing.T) {
	m := &mockProfiles{completeErr: &service.IncompleteError{Step: 2, Missing: []string{"city"}}}
	r := newTestRouter("u1")
	RegisterProfileRoutes(r, m)

	w := doJSON(r, http.MethodPost, "/v1/profile/complete", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"profile incomplete","step":2,"missing":["city"]}`, w.Body.String())

	m.completeErr = nil
	w = doJSON(r, http.MethodPost, "/v1/profile/complete", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"profile_completed":true`)
}
