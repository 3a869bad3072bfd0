// Package directory serves the hospital directory shown next to results.
package directory

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed hospitals.yaml
var hospitalsYAML []byte

type Coordinates struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lng float64 `yaml:"lng" json:"lng"`
}

// Hospital is one directory entry. Distance is a listed value, not computed.
type Hospital struct {
	ID          int         `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Address     string      `yaml:"address" json:"address"`
	Phone       string      `yaml:"phone" json:"phone"`
	Specialties []string    `yaml:"specialties" json:"specialties"`
	Rating      float64     `yaml:"rating" json:"rating"`
	Distance    float64     `yaml:"distance" json:"distance"`
	Coordinates Coordinates `yaml:"coordinates" json:"coordinates"`
}

// Query narrows and orders a directory listing.
type Query struct {
	// Term matches name, address or any specialty (substring, any case).
	Term string
	// Specialty must equal one of the hospital's specialties (any case).
	Specialty string
	// Nearby orders results by ascending distance.
	Nearby bool
}

// Directory is an immutable list of hospitals.
type Directory struct {
	hospitals []Hospital
}

var (
	defaultOnce sync.Once
	defaultDir  *Directory
)

// Default returns the directory embedded in the binary.
func Default() *Directory {
	defaultOnce.Do(func() {
		hs, err := Parse(hospitalsYAML)
		if err != nil {
			panic(fmt.Sprintf("load embedded hospitals: %v", err))
		}
		defaultDir = New(hs)
	})
	return defaultDir
}

// Parse decodes a hospitals document (YAML or JSON with a "hospitals" list).
func Parse(doc []byte) ([]Hospital, error) {
	var f struct {
		Hospitals []Hospital `yaml:"hospitals"`
	}
	if err := yaml.Unmarshal(doc, &f); err != nil {
		return nil, fmt.Errorf("parse hospitals: %w", err)
	}
	return f.Hospitals, nil
}

func New(hospitals []Hospital) *Directory {
	hs := make([]Hospital, len(hospitals))
	copy(hs, hospitals)
	return &Directory{hospitals: hs}
}

func (d *Directory) Len() int { return len(d.hospitals) }

// Find applies q and returns a fresh slice.
func (d *Directory) Find(q Query) []Hospital {
	term := strings.ToLower(strings.TrimSpace(q.Term))
	specialty := strings.TrimSpace(q.Specialty)

	out := []Hospital{}
	for _, h := range d.hospitals {
		if term != "" && !h.matchesTerm(term) {
			continue
		}
		if specialty != "" && !h.HasSpecialty(specialty) {
			continue
		}
		out = append(out, h)
	}
	if q.Nearby {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Distance < out[j].Distance
		})
	}
	return out
}

func (h Hospital) matchesTerm(term string) bool {
	if strings.Contains(strings.ToLower(h.Name), term) ||
		strings.Contains(strings.ToLower(h.Address), term) {
		return true
	}
	for _, s := range h.Specialties {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// HasSpecialty reports whether the hospital lists specialty.
func (h Hospital) HasSpecialty(specialty string) bool {
	for _, s := range h.Specialties {
		if strings.EqualFold(s, specialty) {
			return true
		}
	}
	return false
}

// Specialties returns every listed specialty once, sorted.
func (d *Directory) Specialties() []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, h := range d.hospitals {
		for _, s := range h.Specialties {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
