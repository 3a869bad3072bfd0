package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/haniscreator/mediclue/internal/assessment"
	"github.com/haniscreator/mediclue/internal/engine"
)

// ResultRepo persists completed assessment bundles. Rows are never updated.
type ResultRepo struct {
	pool DBPool
}

func NewResultRepo(pool DBPool) *ResultRepo {
	return &ResultRepo{pool: pool}
}

const resultColumns = `id, user_id, symptoms, age, gender, duration, predictions, created_at`

// Save inserts r. Saving the same id twice returns ErrDuplicate.
func (r *ResultRepo) Save(ctx context.Context, res *assessment.Result) error {
	symptoms, err := json.Marshal(res.Symptoms)
	if err != nil {
		return fmt.Errorf("marshal symptoms: %w", err)
	}
	predictions, err := json.Marshal(res.Predictions)
	if err != nil {
		return fmt.Errorf("marshal predictions: %w", err)
	}
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO assessment_results (`+resultColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (id) DO NOTHING`,
		res.ID, res.UserID, symptoms, res.Age, res.Gender, res.Duration, predictions, res.Timestamp,
	)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDuplicate
	}
	return nil
}

// Get returns result id of userID.
// Returns (nil, nil) if not found.
func (r *ResultRepo) Get(ctx context.Context, userID, id string) (*assessment.Result, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM assessment_results WHERE user_id = $1 AND id = $2`,
		userID, id)
	return scanResult(row)
}

// Latest returns the most recent result of userID.
// Returns (nil, nil) if the user has none.
func (r *ResultRepo) Latest(ctx context.Context, userID string) (*assessment.Result, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM assessment_results WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		userID)
	return scanResult(row)
}

// List returns up to limit results of userID, newest first.
func (r *ResultRepo) List(ctx context.Context, userID string, limit int) ([]*assessment.Result, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+resultColumns+` FROM assessment_results WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*assessment.Result{}
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func scanResult(row pgx.Row) (*assessment.Result, error) {
	var res assessment.Result
	var symptoms, predictions []byte
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&symptoms,
		&res.Age,
		&res.Gender,
		&res.Duration,
		&predictions,
		&res.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(symptoms, &res.Symptoms); err != nil {
		return nil, fmt.Errorf("decode symptoms: %w", err)
	}
	res.Predictions = []engine.Prediction{}
	if err := json.Unmarshal(predictions, &res.Predictions); err != nil {
		return nil, fmt.Errorf("decode predictions: %w", err)
	}
	return &res, nil
}
