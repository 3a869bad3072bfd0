package engine

import (
	"sort"
	"strings"

	"github.com/haniscreator/mediclue/internal/catalog"
)

const (
	// MaxPredictions is how many ranked conditions Score returns.
	MaxPredictions = 3
	// ConfidenceCap keeps a full trigger match below certainty.
	ConfidenceCap = 95.0
)

// MatchMode selects how a selected symptom is compared to a trigger.
type MatchMode int

const (
	// MatchSubstring counts a trigger when a selected name contains it,
	// so "feverish chills" matches "fever".
	MatchSubstring MatchMode = iota
	// MatchExact counts a trigger only when a selected name equals it.
	MatchExact
)

// ParseMatchMode maps "exact" to MatchExact; anything else is MatchSubstring.
func ParseMatchMode(s string) MatchMode {
	if strings.EqualFold(strings.TrimSpace(s), "exact") {
		return MatchExact
	}
	return MatchSubstring
}

func (m MatchMode) String() string {
	if m == MatchExact {
		return "exact"
	}
	return "substring"
}

// Prediction is one ranked candidate condition.
type Prediction struct {
	Disease     string         `json:"disease"`
	Data        catalog.Advice `json:"data"`
	Confidence  float64        `json:"confidence"`
	Probability float64        `json:"probability"`
	MatchCount  int            `json:"match_count"`
}

// Scorer ranks disease rules against a set of selected symptoms.
// The zero value uses substring matching and MaxPredictions.
type Scorer struct {
	Mode  MatchMode
	Limit int
}

// Score ranks rules with the default Scorer.
func Score(selected []string, rules []catalog.DiseaseRule) []Prediction {
	return Scorer{}.Score(selected, rules)
}

// Score returns the best matching rules, highest confidence first. Rules
// without any matched trigger are dropped and equal confidences keep table
// order.
func (s Scorer) Score(selected []string, rules []catalog.DiseaseRule) []Prediction {
	out := []Prediction{}
	if len(selected) == 0 {
		return out
	}

	names := make([]string, 0, len(selected))
	for _, n := range selected {
		names = append(names, Normalize(n))
	}

	for _, r := range rules {
		if len(r.TriggerSymptoms) == 0 {
			continue
		}
		matched := 0
		for _, trigger := range r.TriggerSymptoms {
			if s.matches(names, Normalize(trigger)) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		conf := Confidence(matched, len(r.TriggerSymptoms))
		out = append(out, Prediction{
			Disease:     r.Disease,
			Data:        r.Data,
			Confidence:  conf,
			Probability: conf / 100,
			MatchCount:  matched,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})

	limit := s.Limit
	if limit <= 0 {
		limit = MaxPredictions
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s Scorer) matches(selected []string, trigger string) bool {
	for _, name := range selected {
		if s.Mode == MatchExact {
			if name == trigger {
				return true
			}
			continue
		}
		if strings.Contains(name, trigger) {
			return true
		}
	}
	return false
}

// Confidence is 100*matched/total capped at ConfidenceCap.
func Confidence(matched, total int) float64 {
	if total <= 0 || matched <= 0 {
		return 0
	}
	c := 100 * float64(matched) / float64(total)
	if c > ConfidenceCap {
		return ConfidenceCap
	}
	return c
}
