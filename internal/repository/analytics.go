package repository

import (
	"context"
	"encoding/json"
	"fmt"
)

// AnalyticsRepo defines audit logging operations used by handlers.
type AnalyticsRepo interface {
	// LogSearch records a symptom search (user + query + excluded names + resultCount).
	LogSearch(ctx context.Context, userID, query string, excluded []string, resultCount int) error
}

// analyticsRepo is a simple Postgres-backed implementation.
type analyticsRepo struct {
	pool DBPool
}

func NewAnalyticsRepo(pool DBPool) AnalyticsRepo {
	return &analyticsRepo{pool: pool}
}

func (a *analyticsRepo) LogSearch(ctx context.Context, userID, query string, excluded []string, resultCount int) error {
	if excluded == nil {
		excluded = []string{}
	}
	// serialize excluded names as JSONB
	b, err := json.Marshal(excluded)
	if err != nil {
		return fmt.Errorf("marshal excluded: %w", err)
	}
	_, err = a.pool.Exec(ctx,
		`INSERT INTO symptom_search_events (user_id, query, excluded, result_count) VALUES ($1,$2,$3,$4)`,
		userID, query, b, resultCount,
	)
	return err
}
