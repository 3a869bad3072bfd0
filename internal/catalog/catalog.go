package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed symptoms.yaml
var symptomsYAML []byte

//go:embed diseases.yaml
var diseasesYAML []byte

// Symptom is one entry of the symptom catalog.
type Symptom struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	BodyPart    string   `yaml:"body_part" json:"body_part"`
	Severity    string   `yaml:"severity" json:"severity"`
	CommonNames []string `yaml:"common_names" json:"common_names"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
}

// Advice is the metadata shown next to a matched condition.
type Advice struct {
	Description string   `yaml:"description" json:"description"`
	Severity    string   `yaml:"severity" json:"severity"`
	Remedies    []string `yaml:"remedies" json:"remedies"`
	Specialist  string   `yaml:"specialist" json:"specialist"`
	Urgency     string   `yaml:"urgency" json:"urgency"`
}

// DiseaseRule maps a condition to the symptoms that trigger it.
type DiseaseRule struct {
	Disease         string   `yaml:"disease" json:"disease"`
	TriggerSymptoms []string `yaml:"trigger_symptoms" json:"trigger_symptoms"`
	Data            Advice   `yaml:"data" json:"data"`
}

// Catalog holds the static symptom and disease tables. It is read-only after Parse.
type Catalog struct {
	Symptoms []Symptom
	Diseases []DiseaseRule
	QuickAdd []string

	byName map[string]int
}

type symptomsFile struct {
	QuickAdd []string  `yaml:"quick_add"`
	Symptoms []Symptom `yaml:"symptoms"`
}

type diseasesFile struct {
	Diseases []DiseaseRule `yaml:"diseases"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog embedded in the binary. It is parsed once;
// a malformed embedded file is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(symptomsYAML, diseasesYAML)
		if err != nil {
			panic(fmt.Sprintf("load embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Parse builds a Catalog from the symptom and disease YAML documents.
func Parse(symptomsDoc, diseasesDoc []byte) (*Catalog, error) {
	var sf symptomsFile
	if err := yaml.Unmarshal(symptomsDoc, &sf); err != nil {
		return nil, fmt.Errorf("parse symptoms: %w", err)
	}
	var df diseasesFile
	if err := yaml.Unmarshal(diseasesDoc, &df); err != nil {
		return nil, fmt.Errorf("parse diseases: %w", err)
	}

	c := &Catalog{
		Symptoms: sf.Symptoms,
		Diseases: df.Diseases,
		QuickAdd: sf.QuickAdd,
		byName:   make(map[string]int, len(sf.Symptoms)),
	}
	for i, s := range c.Symptoms {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("symptom %q: empty name", s.ID)
		}
		key := strings.ToLower(s.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("duplicate symptom name %q", s.Name)
		}
		c.byName[key] = i
	}
	for _, d := range c.Diseases {
		if len(d.TriggerSymptoms) == 0 {
			return nil, fmt.Errorf("disease %q: no trigger symptoms", d.Disease)
		}
	}
	for _, q := range c.QuickAdd {
		if _, ok := c.byName[strings.ToLower(q)]; !ok {
			return nil, fmt.Errorf("quick-add symptom %q not in catalog", q)
		}
	}
	return c, nil
}

// Lookup finds a symptom by name, ignoring case.
func (c *Catalog) Lookup(name string) (Symptom, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Symptom{}, false
	}
	return c.Symptoms[i], true
}

// Names returns symptom names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.Symptoms))
	for _, s := range c.Symptoms {
		out = append(out, s.Name)
	}
	return out
}
