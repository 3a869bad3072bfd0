package service

import (
	"context"
	"fmt"

	"github.com/haniscreator/mediclue/internal/assessment"
)

// ResultReader is the read side of repository.ResultRepo.
type ResultReader interface {
	Get(ctx context.Context, userID, id string) (*assessment.Result, error)
	Latest(ctx context.Context, userID string) (*assessment.Result, error)
	List(ctx context.Context, userID string, limit int) ([]*assessment.Result, error)
}

const (
	DefaultResultLimit = 10
	MaxResultLimit     = 50
)

// ResultService serves stored assessment results. Not-found reads return
// (nil, nil).
type ResultService struct {
	repo ResultReader
}

func NewResultService(repo ResultReader) *ResultService {
	return &ResultService{repo: repo}
}

func (s *ResultService) Get(ctx context.Context, userID, id string) (*assessment.Result, error) {
	r, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("repo get result: %w", err)
	}
	return r, nil
}

func (s *ResultService) Latest(ctx context.Context, userID string) (*assessment.Result, error) {
	r, err := s.repo.Latest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("repo latest result: %w", err)
	}
	return r, nil
}

// List returns the newest results; limit is clamped to 1..MaxResultLimit
// with DefaultResultLimit for non-positive values.
func (s *ResultService) List(ctx context.Context, userID string, limit int) ([]*assessment.Result, error) {
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	if limit > MaxResultLimit {
		limit = MaxResultLimit
	}
	out, err := s.repo.List(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("repo list results: %w", err)
	}
	return out, nil
}
