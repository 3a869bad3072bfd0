package assessment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/haniscreator/mediclue/internal/catalog"
	"github.com/haniscreator/mediclue/internal/engine"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestAssessor() *Assessor {
	a := NewAssessor(catalog.Default(), engine.Scorer{})
	a.Delay = 0
	a.Now = func() time.Time { return fixedNow }
	return a
}

func validDetails() Details {
	return Details{Age: 34, Gender: "female", Duration: "days"}
}

func TestNewSession_Prefill(t *testing.T) {
	dob := time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC)
	gender := "male"
	s := NewSession("s1", "u1", Prefill{DateOfBirth: &dob, Gender: &gender}, fixedNow)

	assert.Equal(t, CollectingSymptoms, s.State())
	assert.Equal(t, 35, s.Details().Age)
	assert.Equal(t, "male", s.Details().Gender)
	assert.Empty(t, s.Details().Duration)
}

func TestNewSession_PrefillIgnoresUnknownGender(t *testing.T) {
	gender := "prefer-not-to-say"
	s := NewSession("s1", "u1", Prefill{Gender: &gender}, fixedNow)
	assert.Empty(t, s.Details().Gender)
	assert.Zero(t, s.Details().Age)
}

func TestSession_AddIsIdempotent(t *testing.T) {
	a := newTestAssessor()
	s := a.Start("s1", "u1", Prefill{})

	assert.NoError(t, a.AddSymptom(s, "fever"))
	assert.NoError(t, a.AddSymptom(s, "Fever"))
	assert.NoError(t, a.AddSymptom(s, "cough"))
	assert.Equal(t, []string{"fever", "cough"}, s.Symptoms())
}

func TestSession_AddUnknown(t *testing.T) {
	a := newTestAssessor()
	s := a.Start("s1", "u1", Prefill{})
	assert.ErrorIs(t, a.AddSymptom(s, "hiccups"), ErrUnknownSymptom)
	assert.Empty(t, s.Symptoms())
}

func TestSession_Remove(t *testing.T) {
	a := newTestAssessor()
	s := a.Start("s1", "u1", Prefill{})
	_ = a.AddSymptom(s, "fever")
	_ = a.AddSymptom(s, "cough")
	_ = a.AddSymptom(s, "nausea")

	assert.NoError(t, s.RemoveSymptom("cough", fixedNow))
	assert.NoError(t, s.RemoveSymptom("missing", fixedNow))
	assert.Equal(t, []string{"fever", "nausea"}, s.Symptoms())
}

func TestSession_NextRequiresSymptom(t *testing.T) {
	s := NewSession("s1", "u1", Prefill{}, fixedNow)
	assert.ErrorIs(t, s.Next(fixedNow), ErrNoSymptoms)
	assert.Equal(t, CollectingSymptoms, s.State())
	assert.False(t, s.View().CanAdvance)
}

func TestSession_BackKeepsSelection(t *testing.T) {
	a := newTestAssessor()
	s := a.Start("s1", "u1", Prefill{})
	_ = a.AddSymptom(s, "headache")
	assert.NoError(t, s.Next(fixedNow))
	assert.NoError(t, s.SetDetails(Details{Age: 40}, fixedNow))

	assert.NoError(t, s.Back(fixedNow))
	assert.Equal(t, CollectingSymptoms, s.State())
	assert.Equal(t, []string{"headache"}, s.Symptoms())
	assert.Equal(t, 40, s.Details().Age)
}

func TestSession_InvalidTransitions(t *testing.T) {
	s := NewSession("s1", "u1", Prefill{}, fixedNow)
	assert.ErrorIs(t, s.Back(fixedNow), ErrInvalidTransition)
	assert.ErrorIs(t, s.SetDetails(validDetails(), fixedNow), ErrInvalidTransition)

	_ = s.AddSymptom("fever", fixedNow)
	_ = s.Next(fixedNow)
	assert.ErrorIs(t, s.AddSymptom("cough", fixedNow), ErrInvalidTransition)
	assert.ErrorIs(t, s.RemoveSymptom("fever", fixedNow), ErrInvalidTransition)
	assert.ErrorIs(t, s.Next(fixedNow), ErrInvalidTransition)
}

func TestRun_SubmitOnlyFromConfirming(t *testing.T) {
	a := newTestAssessor()
	s := a.Start("s1", "u1", Prefill{})
	_ = a.AddSymptom(s, "fever")

	_, err := a.Run(context.Background(), s)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRun_ValidatesDetails(t *testing.T) {
	cases := []struct {
		name    string
		details Details
		want    error
	}{
		{"missing age", Details{Gender: "male", Duration: "days"}, ErrInvalidAge},
		{"age too high", Details{Age: 121, Gender: "male", Duration: "days"}, ErrInvalidAge},
		{"missing gender", Details{Age: 30, Duration: "days"}, ErrInvalidGender},
		{"bad gender", Details{Age: 30, Gender: "unknown", Duration: "days"}, ErrInvalidGender},
		{"missing duration", Details{Age: 30, Gender: "other"}, ErrInvalidDuration},
		{"bad duration", Details{Age: 30, Gender: "other", Duration: "decades"}, ErrInvalidDuration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAssessor()
			s := a.Start("s1", "u1", Prefill{})
			_ = a.AddSymptom(s, "fever")
			_ = s.Next(fixedNow)
			_ = s.SetDetails(tc.details, fixedNow)

			_, err := a.Run(context.Background(), s)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, ConfirmingDetails, s.State())
		})
	}
}

func TestRun_Migraine(t *testing.T) {
	a := newTestAssessor()
	s := a.Start("s1", "u1", Prefill{})
	for _, n := range []string{"headache", "nausea", "dizziness"} {
		assert.NoError(t, a.AddSymptom(s, n))
	}
	assert.NoError(t, s.Next(fixedNow))
	assert.NoError(t, s.SetDetails(validDetails(), fixedNow))

	res, err := a.Run(context.Background(), s)
	assert.NoError(t, err)
	if assert.NotNil(t, res) {
		assert.Equal(t, "u1", res.UserID)
		assert.Equal(t, []string{"headache", "nausea", "dizziness"}, res.Symptoms)
		assert.Equal(t, 34, res.Age)
		assert.Equal(t, "female", res.Gender)
		assert.Equal(t, "days", res.Duration)
		assert.Equal(t, fixedNow, res.Timestamp)
		if assert.NotEmpty(t, res.Predictions) {
			assert.Equal(t, "Migraine", res.Predictions[0].Disease)
			assert.Equal(t, 3, res.Predictions[0].MatchCount)
			assert.Equal(t, 95.0, res.Predictions[0].Confidence)
		}
	}
	assert.Equal(t, Complete, s.State())

	_, err = a.Run(context.Background(), s)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRun_CancelledDuringDelay(t *testing.T) {
	a := newTestAssessor()
	a.Delay = time.Minute
	s := a.Start("s1", "u1", Prefill{})
	_ = a.AddSymptom(s, "fever")
	_ = s.Next(fixedNow)
	_ = s.SetDetails(validDetails(), fixedNow)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := a.Run(ctx, s)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
	assert.Equal(t, ConfirmingDetails, s.State())
}

func TestRun_WaitsDelay(t *testing.T) {
	a := newTestAssessor()
	a.Delay = 20 * time.Millisecond
	s := a.Start("s1", "u1", Prefill{})
	_ = a.AddSymptom(s, "fever")
	_ = a.AddSymptom(s, "muscle pain")
	_ = s.Next(fixedNow)
	_ = s.SetDetails(validDetails(), fixedNow)

	start := time.Now()
	res, err := a.Run(context.Background(), s)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	if assert.Len(t, res.Predictions, 1) {
		assert.Equal(t, "Flu", res.Predictions[0].Disease)
		assert.Equal(t, 40.0, res.Predictions[0].Confidence)
	}
}

func TestSuggest_ExcludesSelected(t *testing.T) {
	a := newTestAssessor()
	s := a.Start("s1", "u1", Prefill{})
	_ = a.AddSymptom(s, "cough")

	got := a.Suggest(s, "throat")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "sore throat", got[0].Name)
	}
}

func TestStepFor(t *testing.T) {
	assert.Equal(t, 1, StepFor(CollectingSymptoms).Number)
	assert.Equal(t, 2, StepFor(ConfirmingDetails).Number)
	assert.True(t, Allows(ConfirmingDetails, ActionSubmit))
	assert.False(t, Allows(Scoring, ActionSubmit))
	assert.NotNil(t, StepFor(Scoring).Actions)
	assert.Equal(t, 0, StepFor(State(99)).Number)
}

func TestView_CanAdvanceOnConfirm(t *testing.T) {
	s := NewSession("s1", "u1", Prefill{}, fixedNow)
	_ = s.AddSymptom("fever", fixedNow)
	assert.True(t, s.View().CanAdvance)
	_ = s.Next(fixedNow)
	assert.False(t, s.View().CanAdvance)
	_ = s.SetDetails(validDetails(), fixedNow)

	v := s.View()
	assert.True(t, v.CanAdvance)
	assert.Equal(t, "Confirm Details", v.Step.Title)
	assert.Equal(t, []string{"Symptoms", "Confirm Details"}, v.Progress)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "collecting_symptoms", CollectingSymptoms.String())
	b, err := Complete.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "complete", string(b))

	var st State
	assert.NoError(t, st.UnmarshalText([]byte("confirming_details")))
	assert.Equal(t, ConfirmingDetails, st)
	assert.Error(t, st.UnmarshalText([]byte("done")))
}
