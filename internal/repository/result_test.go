package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"

	"github.com/haniscreator/mediclue/internal/assessment"
	"github.com/haniscreator/mediclue/internal/catalog"
	"github.com/haniscreator/mediclue/internal/engine"
)

var resultCols = []string{"id", "user_id", "symptoms", "age", "gender", "duration", "predictions", "created_at"}

func sampleResult(ts time.Time) *assessment.Result {
	return &assessment.Result{
		ID:       "r1",
		UserID:   "u1",
		Symptoms: []string{"fever", "muscle pain"},
		Age:      30,
		Gender:   "male",
		Duration: "days",
		Predictions: []engine.Prediction{{
			Disease:     "Flu",
			Data:        catalog.Advice{Specialist: "General Practitioner", Urgency: "medium"},
			Confidence:  40,
			Probability: 0.4,
			MatchCount:  2,
		}},
		Timestamp: ts,
	}
}

func TestResult_Save(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO assessment_results`).
		WithArgs("r1", "u1", []byte(`["fever","muscle pain"]`), 30, "male", "days", pgxmock.AnyArg(), ts).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = NewResultRepo(mock).Save(context.Background(), sampleResult(ts))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResult_Save_WriteOnce(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	ts := time.Now()
	mock.ExpectExec(`ON CONFLICT \(id\) DO NOTHING`).
		WithArgs("r1", "u1", pgxmock.AnyArg(), 30, "male", "days", pgxmock.AnyArg(), ts).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err = NewResultRepo(mock).Save(context.Background(), sampleResult(ts))
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResult_Latest(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	preds, _ := json.Marshal(sampleResult(ts).Predictions)
	mock.ExpectQuery(`SELECT id, user_id, symptoms, age, gender, duration, predictions, created_at FROM assessment_results WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows(resultCols).
			AddRow("r1", "u1", []byte(`["fever","muscle pain"]`), 30, "male", "days", preds, ts))

	got, err := NewResultRepo(mock).Latest(context.Background(), "u1")
	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.Equal(t, "r1", got.ID)
		assert.Equal(t, []string{"fever", "muscle pain"}, got.Symptoms)
		assert.Equal(t, ts, got.Timestamp)
		if assert.Len(t, got.Predictions, 1) {
			assert.Equal(t, "Flu", got.Predictions[0].Disease)
			assert.Equal(t, 2, got.Predictions[0].MatchCount)
			assert.Equal(t, "General Practitioner", got.Predictions[0].Data.Specialist)
		}
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResult_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM assessment_results WHERE user_id = \$1 AND id = \$2`).
		WithArgs("u1", "nope").
		WillReturnRows(pgxmock.NewRows(resultCols))

	got, err := NewResultRepo(mock).Get(context.Background(), "u1", "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResult_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	t1 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("u1", 10).
		WillReturnRows(pgxmock.NewRows(resultCols).
			AddRow("r2", "u1", []byte(`["nausea"]`), 30, "male", "hours", []byte(`[]`), t1).
			AddRow("r1", "u1", []byte(`["fever"]`), 30, "male", "days", []byte(`[]`), t2))

	got, err := NewResultRepo(mock).List(context.Background(), "u1", 10)
	assert.NoError(t, err)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "r2", got[0].ID)
		assert.Equal(t, "r1", got[1].ID)
		assert.NotNil(t, got[1].Predictions)
		assert.Empty(t, got[1].Predictions)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
