package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDefault_Loads(t *testing.T) {
	c := Default()
	assert.Len(t, c.Symptoms, 12)
	assert.Len(t, c.Diseases, 4)

	want := []string{"fever", "headache", "cough", "fatigue", "nausea"}
	if diff := cmp.Diff(want, c.QuickAdd); diff != "" {
		t.Errorf("quick add mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_DiseaseOrder(t *testing.T) {
	var got []string
	for _, d := range Default().Diseases {
		got = append(got, d.Disease)
	}
	want := []string{"Common Cold", "Flu", "Migraine", "Gastroenteritis"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("disease order mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_FluRule(t *testing.T) {
	flu := Default().Diseases[1]
	assert.Equal(t, "Flu", flu.Disease)
	assert.Equal(t, []string{"fever", "headache", "muscle pain", "fatigue", "cough"}, flu.TriggerSymptoms)
	assert.Equal(t, "General Practitioner", flu.Data.Specialist)
	assert.Equal(t, "medium", flu.Data.Urgency)
	assert.Len(t, flu.Data.Remedies, 4)
}

func TestLookup(t *testing.T) {
	c := Default()
	s, ok := c.Lookup("  Shortness Of Breath ")
	assert.True(t, ok)
	assert.Equal(t, "5", s.ID)
	assert.Equal(t, "respiratory", s.BodyPart)
	assert.Contains(t, s.CommonNames, "can't breathe")

	_, ok = c.Lookup("hiccups")
	assert.False(t, ok)
}

func TestParse_DuplicateName(t *testing.T) {
	symptoms := []byte(`
symptoms:
  - {id: "1", name: fever}
  - {id: "2", name: Fever}
`)
	_, err := Parse(symptoms, []byte(`diseases: []`))
	assert.ErrorContains(t, err, "duplicate symptom name")
}

func TestParse_RuleWithoutTriggers(t *testing.T) {
	symptoms := []byte(`symptoms: [{id: "1", name: fever}]`)
	diseases := []byte(`diseases: [{disease: Nothing, trigger_symptoms: []}]`)
	_, err := Parse(symptoms, diseases)
	assert.ErrorContains(t, err, "no trigger symptoms")
}

func TestParse_UnknownQuickAdd(t *testing.T) {
	symptoms := []byte(`
quick_add: [sneezing]
symptoms: [{id: "1", name: fever}]
`)
	_, err := Parse(symptoms, []byte(`diseases: []`))
	assert.ErrorContains(t, err, "sneezing")
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte("symptoms: ["), []byte(`diseases: []`))
	assert.Error(t, err)
}
