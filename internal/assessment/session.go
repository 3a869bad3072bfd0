package assessment

import (
	"sync"
	"time"

	"github.com/haniscreator/mediclue/internal/engine"
)

// Prefill carries profile values used as confirmation defaults. Nil fields
// are simply not pre-filled.
type Prefill struct {
	DateOfBirth *time.Time
	Gender      *string
}

// AgeOn returns the year difference between dob and now, as the profile
// page computes it.
func AgeOn(dob, now time.Time) int {
	return now.Year() - dob.Year()
}

// Result is the bundle produced by a completed assessment.
type Result struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	Symptoms    []string            `json:"symptoms"`
	Age         int                 `json:"age"`
	Gender      string              `json:"gender"`
	Duration    string              `json:"duration"`
	Predictions []engine.Prediction `json:"predictions"`
	Timestamp   time.Time           `json:"timestamp"`
}

// Session is one user's walk through the symptom checker. All methods are
// safe for concurrent use.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time

	mu        sync.Mutex
	state     State
	symptoms  SelectedSymptoms
	details   Details
	updatedAt time.Time
}

// NewSession starts a session in CollectingSymptoms with details pre-filled
// from p.
func NewSession(id, userID string, p Prefill, now time.Time) *Session {
	s := &Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		state:     CollectingSymptoms,
		updatedAt: now,
	}
	if p.DateOfBirth != nil {
		if age := AgeOn(*p.DateOfBirth, now); age >= MinAge && age <= MaxAge {
			s.details.Age = age
		}
	}
	if p.Gender != nil && oneOf(*p.Gender, Genders) {
		s.details.Gender = *p.Gender
	}
	return s
}

// View is a point-in-time snapshot of a session for rendering.
type View struct {
	ID         string    `json:"id"`
	State      State     `json:"state"`
	Step       Step      `json:"step"`
	Progress   []string  `json:"progress"`
	Symptoms   []string  `json:"symptoms"`
	Details    Details   `json:"details"`
	CanAdvance bool      `json:"can_advance"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	v := View{
		ID:        s.ID,
		State:     s.state,
		Step:      StepFor(s.state),
		Progress:  append([]string(nil), ProgressLabels...),
		Symptoms:  s.symptoms.List(),
		Details:   s.details,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.updatedAt,
	}
	switch s.state {
	case CollectingSymptoms:
		v.CanAdvance = s.symptoms.Len() > 0
	case ConfirmingDetails:
		v.CanAdvance = s.details.Complete()
	}
	return v
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Symptoms returns the selected names in display order.
func (s *Session) Symptoms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.symptoms.List()
}

// AddSymptom selects name. Adding a name twice is a no-op.
func (s *Session) AddSymptom(name string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !Allows(s.state, ActionAddSymptom) {
		return ErrInvalidTransition
	}
	if s.symptoms.Add(name) {
		s.updatedAt = now
	}
	return nil
}

// RemoveSymptom deselects name; removing an absent name is a no-op.
func (s *Session) RemoveSymptom(name string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !Allows(s.state, ActionRemoveSymptom) {
		return ErrInvalidTransition
	}
	if s.symptoms.Remove(name) {
		s.updatedAt = now
	}
	return nil
}

// Next moves from CollectingSymptoms to ConfirmingDetails.
func (s *Session) Next(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !Allows(s.state, ActionNext) {
		return ErrInvalidTransition
	}
	if s.symptoms.Len() == 0 {
		return ErrNoSymptoms
	}
	s.state = ConfirmingDetails
	s.updatedAt = now
	return nil
}

// Back returns from ConfirmingDetails to CollectingSymptoms, keeping the
// selection and any entered details.
func (s *Session) Back(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !Allows(s.state, ActionBack) {
		return ErrInvalidTransition
	}
	s.state = CollectingSymptoms
	s.updatedAt = now
	return nil
}

// SetDetails stores the confirmation form. Values are validated on submit,
// so a partially filled form is accepted here.
func (s *Session) SetDetails(d Details, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !Allows(s.state, ActionSetDetails) {
		return ErrInvalidTransition
	}
	s.details = d
	s.updatedAt = now
	return nil
}

// Details returns the current confirmation values.
func (s *Session) Details() Details {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details
}

// beginScoring validates the confirmation step and enters Scoring.
func (s *Session) beginScoring(now time.Time) ([]string, Details, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !Allows(s.state, ActionSubmit) {
		return nil, Details{}, ErrInvalidTransition
	}
	if s.symptoms.Len() == 0 {
		return nil, Details{}, ErrNoSymptoms
	}
	if err := s.details.Validate(); err != nil {
		return nil, Details{}, err
	}
	s.state = Scoring
	s.updatedAt = now
	return s.symptoms.List(), s.details, nil
}

func (s *Session) finishScoring(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Complete
	s.updatedAt = now
}

func (s *Session) abortScoring(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Scoring {
		s.state = ConfirmingDetails
		s.updatedAt = now
	}
}
