package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/haniscreator/mediclue/internal/assessment"
	"github.com/haniscreator/mediclue/internal/catalog"
	"github.com/haniscreator/mediclue/internal/logging"
	"github.com/haniscreator/mediclue/internal/repository"
	"github.com/haniscreator/mediclue/internal/session"
)

// ResultWriter stores completed assessment bundles.
type ResultWriter interface {
	Save(ctx context.Context, r *assessment.Result) error
}

// ProfileReader loads the profile used to pre-fill confirmation details.
type ProfileReader interface {
	GetByUserID(ctx context.Context, userID string) (*repository.Profile, error)
}

// AssessmentService drives symptom checker sessions for HTTP callers. Every
// call is scoped to the calling user.
type AssessmentService struct {
	assessor *assessment.Assessor
	store    *session.Store
	results  ResultWriter
	profiles ProfileReader
	log      *slog.Logger
	now      func() time.Time
}

func NewAssessmentService(a *assessment.Assessor, store *session.Store, results ResultWriter, profiles ProfileReader) *AssessmentService {
	return &AssessmentService{
		assessor: a,
		store:    store,
		results:  results,
		profiles: profiles,
		log:      logging.New("assessment"),
		now:      time.Now,
	}
}

// Start opens a session pre-filled from the user's profile. A profile that
// cannot be read only loses the pre-fill.
func (s *AssessmentService) Start(ctx context.Context, userID string) (assessment.View, error) {
	sess := s.assessor.Start(uuid.NewString(), userID, s.prefill(ctx, userID))
	s.store.Put(sess)
	s.log.Debug("session started", "session", sess.ID, "user", userID)
	return sess.View(), nil
}

func (s *AssessmentService) prefill(ctx context.Context, userID string) assessment.Prefill {
	var p assessment.Prefill
	if s.profiles == nil {
		return p
	}
	prof, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Warn("profile prefill unavailable", "user", userID, "error", err)
		return p
	}
	if prof == nil {
		return p
	}
	if prof.DateOfBirth != nil {
		if dob, err := time.Parse("2006-01-02", *prof.DateOfBirth); err == nil {
			p.DateOfBirth = &dob
		}
	}
	p.Gender = prof.Gender
	return p
}

func (s *AssessmentService) Get(userID, id string) (assessment.View, error) {
	sess, err := s.store.Get(userID, id)
	if err != nil {
		return assessment.View{}, err
	}
	return sess.View(), nil
}

// update loads the session, applies fn and refreshes its TTL.
func (s *AssessmentService) update(userID, id string, fn func(*assessment.Session) error) (assessment.View, error) {
	sess, err := s.store.Get(userID, id)
	if err != nil {
		return assessment.View{}, err
	}
	if err := fn(sess); err != nil {
		return assessment.View{}, err
	}
	s.store.Put(sess)
	return sess.View(), nil
}

func (s *AssessmentService) AddSymptom(userID, id, name string) (assessment.View, error) {
	return s.update(userID, id, func(sess *assessment.Session) error {
		return s.assessor.AddSymptom(sess, name)
	})
}

func (s *AssessmentService) RemoveSymptom(userID, id, name string) (assessment.View, error) {
	return s.update(userID, id, func(sess *assessment.Session) error {
		return sess.RemoveSymptom(name, s.now())
	})
}

func (s *AssessmentService) Next(userID, id string) (assessment.View, error) {
	return s.update(userID, id, func(sess *assessment.Session) error {
		return sess.Next(s.now())
	})
}

func (s *AssessmentService) Back(userID, id string) (assessment.View, error) {
	return s.update(userID, id, func(sess *assessment.Session) error {
		return sess.Back(s.now())
	})
}

// SetDetails merges the non-zero fields of d into the session's details, so
// pre-filled values survive a partial form.
func (s *AssessmentService) SetDetails(userID, id string, d assessment.Details) (assessment.View, error) {
	return s.update(userID, id, func(sess *assessment.Session) error {
		merged := sess.Details()
		if d.Age != 0 {
			merged.Age = d.Age
		}
		if d.Gender != "" {
			merged.Gender = d.Gender
		}
		if d.Duration != "" {
			merged.Duration = d.Duration
		}
		return sess.SetDetails(merged, s.now())
	})
}

// Suggest runs a catalog search that leaves out the session's selections.
func (s *AssessmentService) Suggest(userID, id, query string) ([]catalog.Symptom, error) {
	sess, err := s.store.Get(userID, id)
	if err != nil {
		return nil, err
	}
	return s.assessor.Suggest(sess, query), nil
}

// Submit scores the session, stores the result under a fresh id and drops
// the session. If storing fails the session stays, in the complete state.
func (s *AssessmentService) Submit(ctx context.Context, userID, id string) (*assessment.Result, error) {
	sess, err := s.store.Get(userID, id)
	if err != nil {
		return nil, err
	}
	res, err := s.assessor.Run(ctx, sess)
	if err != nil {
		return nil, err
	}
	res.ID = uuid.NewString()
	if err := s.results.Save(ctx, res); err != nil {
		s.log.Error("save result failed", "session", id, "user", userID, "error", err)
		return nil, fmt.Errorf("save result: %w", err)
	}
	if err := s.store.Delete(userID, id); err != nil && !errors.Is(err, session.ErrNotFound) {
		return nil, err
	}
	s.log.Info("assessment completed",
		"result", res.ID,
		"user", userID,
		"symptoms", len(res.Symptoms),
		"predictions", len(res.Predictions),
	)
	return res, nil
}

// Cancel discards the session.
func (s *AssessmentService) Cancel(userID, id string) error {
	return s.store.Delete(userID, id)
}
