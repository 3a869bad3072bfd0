// Package engine matches free-text queries against the symptom catalog and
// scores selected symptoms against the disease trigger table.
//
// Everything here is a pure function over read-only catalog data; callers
// may share the inputs between goroutines.
package engine

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/haniscreator/mediclue/internal/catalog"
)

// MinQueryLength is the shortest query (in characters) that is searched at all.
const MinQueryLength = 2

// Normalize folds s for comparison: NFKC, trimmed, lower case.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}

// Search returns the catalog symptoms matching every whitespace-separated
// token of query. A token matches a symptom when it is a substring of its
// name, a common name, a keyword or the description. Symptoms named in
// excluded are skipped. Catalog order is kept.
func Search(query string, symptoms []catalog.Symptom, excluded []string) []catalog.Symptom {
	out := []catalog.Symptom{}

	q := Normalize(query)
	if utf8.RuneCountInString(q) < MinQueryLength {
		return out
	}
	tokens := strings.Fields(q)

	skip := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		skip[Normalize(name)] = struct{}{}
	}

	for _, s := range symptoms {
		if _, ok := skip[Normalize(s.Name)]; ok {
			continue
		}
		if matchesAll(s, tokens) {
			out = append(out, s)
		}
	}
	return out
}

func matchesAll(s catalog.Symptom, tokens []string) bool {
	fields := searchFields(s)
	for _, tok := range tokens {
		if !anyContains(fields, tok) {
			return false
		}
	}
	return true
}

func searchFields(s catalog.Symptom) []string {
	fields := make([]string, 0, 2+len(s.CommonNames)+len(s.Keywords))
	fields = append(fields, Normalize(s.Name), Normalize(s.Description))
	for _, n := range s.CommonNames {
		fields = append(fields, Normalize(n))
	}
	for _, k := range s.Keywords {
		fields = append(fields, Normalize(k))
	}
	return fields
}

func anyContains(fields []string, tok string) bool {
	for _, f := range fields {
		if strings.Contains(f, tok) {
			return true
		}
	}
	return false
}
