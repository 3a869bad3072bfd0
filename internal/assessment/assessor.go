package assessment

import (
	"context"
	"time"

	"github.com/haniscreator/mediclue/internal/catalog"
	"github.com/haniscreator/mediclue/internal/engine"
)

// DefaultDelay is the simulated analysis latency.
const DefaultDelay = 2 * time.Second

// Assessor runs sessions against the catalog.
type Assessor struct {
	Catalog *catalog.Catalog
	Scorer  engine.Scorer
	// Delay before scoring; zero means no wait.
	Delay time.Duration
	Now   func() time.Time
}

// NewAssessor returns an Assessor over c with DefaultDelay.
func NewAssessor(c *catalog.Catalog, scorer engine.Scorer) *Assessor {
	return &Assessor{Catalog: c, Scorer: scorer, Delay: DefaultDelay, Now: time.Now}
}

func (a *Assessor) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Start opens a new session for userID.
func (a *Assessor) Start(id, userID string, p Prefill) *Session {
	return NewSession(id, userID, p, a.now())
}

// AddSymptom resolves name against the catalog and selects the canonical
// name. Names outside the catalog are rejected.
func (a *Assessor) AddSymptom(s *Session, name string) error {
	sym, ok := a.Catalog.Lookup(name)
	if !ok {
		return ErrUnknownSymptom
	}
	return s.AddSymptom(sym.Name, a.now())
}

// Suggest searches the catalog for query, excluding what s already holds.
func (a *Assessor) Suggest(s *Session, query string) []catalog.Symptom {
	return engine.Search(query, a.Catalog.Symptoms, s.Symptoms())
}

// Run validates the confirmation step, waits the simulated delay and scores
// the selection. If ctx ends during the wait the session goes back to
// ConfirmingDetails and ctx.Err() is returned. The returned Result has no
// ID; the caller assigns one when storing it.
func (a *Assessor) Run(ctx context.Context, s *Session) (*Result, error) {
	selected, details, err := s.beginScoring(a.now())
	if err != nil {
		return nil, err
	}

	if a.Delay > 0 {
		t := time.NewTimer(a.Delay)
		select {
		case <-ctx.Done():
			t.Stop()
			s.abortScoring(a.now())
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	predictions := a.Scorer.Score(selected, a.Catalog.Diseases)
	now := a.now()
	s.finishScoring(now)

	return &Result{
		UserID:      s.UserID,
		Symptoms:    selected,
		Age:         details.Age,
		Gender:      details.Gender,
		Duration:    details.Duration,
		Predictions: predictions,
		Timestamp:   now.UTC(),
	}, nil
}
