// Package assessment implements the symptom checker workflow: collect
// symptoms, confirm patient details, score, and hand over the result.
package assessment

import (
	"errors"
	"fmt"
	"strings"
)

// State is the step an assessment session is in.
type State int

const (
	CollectingSymptoms State = iota + 1
	ConfirmingDetails
	Scoring
	Complete
)

var stateNames = map[State]string{
	CollectingSymptoms: "collecting_symptoms",
	ConfirmingDetails:  "confirming_details",
	Scoring:            "scoring",
	Complete:           "complete",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText renders the state by name in JSON payloads.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (s *State) UnmarshalText(b []byte) error {
	name := strings.TrimSpace(string(b))
	for st, n := range stateNames {
		if n == name {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", name)
}

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNoSymptoms        = errors.New("at least one symptom is required")
	ErrUnknownSymptom    = errors.New("unknown symptom")
	ErrInvalidAge        = errors.New("age must be between 1 and 120")
	ErrInvalidGender     = errors.New("gender must be male, female or other")
	ErrInvalidDuration   = errors.New("duration must be hours, days, weeks, months or years")
)

// Genders accepted on the confirmation step.
var Genders = []string{"male", "female", "other"}

// Durations accepted on the confirmation step.
var Durations = []string{"hours", "days", "weeks", "months", "years"}

const (
	MinAge = 1
	MaxAge = 120
)

// Details are the patient facts confirmed before scoring.
type Details struct {
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Duration string `json:"duration"`
}

// Validate reports the first missing or out-of-range field.
func (d Details) Validate() error {
	if d.Age < MinAge || d.Age > MaxAge {
		return ErrInvalidAge
	}
	if !oneOf(d.Gender, Genders) {
		return ErrInvalidGender
	}
	if !oneOf(d.Duration, Durations) {
		return ErrInvalidDuration
	}
	return nil
}

// Complete reports whether every field passes validation.
func (d Details) Complete() bool {
	return d.Validate() == nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// SelectedSymptoms is an insertion-ordered set of symptom names.
type SelectedSymptoms struct {
	names []string
}

// Add appends name unless it is already present (case-insensitive).
func (s *SelectedSymptoms) Add(name string) bool {
	if s.Contains(name) {
		return false
	}
	s.names = append(s.names, name)
	return true
}

// Remove drops name and reports whether it was present.
func (s *SelectedSymptoms) Remove(name string) bool {
	for i, n := range s.names {
		if strings.EqualFold(n, name) {
			s.names = append(s.names[:i:i], s.names[i+1:]...)
			return true
		}
	}
	return false
}

func (s *SelectedSymptoms) Contains(name string) bool {
	for _, n := range s.names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

func (s *SelectedSymptoms) Len() int { return len(s.names) }

// List returns a copy of the names in display order.
func (s *SelectedSymptoms) List() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}
