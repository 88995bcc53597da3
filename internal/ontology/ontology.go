// Package ontology holds the table of known skills, their surface-form
// variations, category and weight.
package ontology

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Category groups skills for reporting.
type Category string

const (
	CategoryProgrammingLanguage Category = "programming_language"
	CategoryFramework           Category = "framework"
	CategoryDevOps              Category = "devops"
	CategoryTesting             Category = "testing"
	CategorySecurity            Category = "security"
	CategoryArchitecture        Category = "architecture"
	CategoryNetworking          Category = "networking"
	CategoryAccessibility       Category = "accessibility"
	CategoryPrivacy             Category = "privacy"
	CategoryProjectManagement   Category = "project_management"
	CategoryAnalytics           Category = "analytics"
	CategoryDistribution        Category = "distribution"
	CategoryPerformance         Category = "performance"
	CategoryCloud               Category = "cloud"
	CategoryDevelopmentTool     Category = "development_tool"
	CategoryInterpersonal       Category = "interpersonal"
)

var categories = map[Category]struct{}{
	CategoryProgrammingLanguage: {},
	CategoryFramework:           {},
	CategoryDevOps:              {},
	CategoryTesting:             {},
	CategorySecurity:            {},
	CategoryArchitecture:        {},
	CategoryNetworking:          {},
	CategoryAccessibility:       {},
	CategoryPrivacy:             {},
	CategoryProjectManagement:   {},
	CategoryAnalytics:           {},
	CategoryDistribution:        {},
	CategoryPerformance:         {},
	CategoryCloud:               {},
	CategoryDevelopmentTool:     {},
	CategoryInterpersonal:       {},
}

// Kind is the single authoritative technical/soft classification of a skill.
type Kind string

const (
	KindTechnical Kind = "technical"
	KindSoft      Kind = "soft"
)

var (
	// ErrDuplicateID is returned when two entries share a canonical id.
	ErrDuplicateID = errors.New("duplicate skill id")
	// ErrUnknownCategory is returned for entries with a category outside the known set.
	ErrUnknownCategory = errors.New("unknown skill category")
)

// SkillDefinition describes one canonical skill.
type SkillDefinition struct {
	ID         string
	Variations []string
	Category   Category
	Weight     float64
	Kind       Kind
}

// Variation is a surface form owned by a canonical skill.
type Variation struct {
	Text    string
	SkillID string
}

// Ontology is an immutable lookup structure. It is safe for concurrent use.
type Ontology struct {
	defs        []SkillDefinition
	byID        map[string]int
	byVariation map[string]string
	variations  []Variation
}

// New builds an ontology from entries. Ids present in softSkills are
// classified as soft, every other skill is technical. Lexicon ids that are
// not in the table are ignored.
func New(entries []Entry, softSkills []string) (*Ontology, error) {
	soft := make(map[string]struct{}, len(softSkills))
	for _, s := range softSkills {
		soft[Normalize(s)] = struct{}{}
	}

	o := &Ontology{
		byID:        make(map[string]int, len(entries)),
		byVariation: make(map[string]string),
	}

	for i, e := range entries {
		def, err := e.definition()
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i, e.ID, err)
		}
		if _, ok := o.byID[def.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, def.ID)
		}
		if _, ok := soft[def.ID]; ok {
			def.Kind = KindSoft
		}

		o.byID[def.ID] = len(o.defs)
		o.defs = append(o.defs, def)
	}

	// A variation equal to a canonical id always resolves to that skill.
	// Otherwise the first defined owner wins.
	for _, def := range o.defs {
		for _, v := range def.Variations {
			o.variations = append(o.variations, Variation{Text: v, SkillID: def.ID})
			if _, taken := o.byVariation[v]; taken {
				continue
			}
			if _, isID := o.byID[v]; isID && v != def.ID {
				continue
			}
			o.byVariation[v] = def.ID
		}
	}
	for id := range o.byID {
		o.byVariation[id] = id
	}

	sort.SliceStable(o.variations, func(i, j int) bool {
		if o.variations[i].Text != o.variations[j].Text {
			return o.variations[i].Text < o.variations[j].Text
		}
		return o.variations[i].SkillID < o.variations[j].SkillID
	})

	return o, nil
}

// MustNew is like New but panics on error. Intended for built-in tables.
func MustNew(entries []Entry, softSkills []string) *Ontology {
	o, err := New(entries, softSkills)
	if err != nil {
		panic(err)
	}
	return o
}

// Default returns the ontology built from the built-in table and lexicon.
func Default() *Ontology {
	return MustNew(DefaultEntries(), DefaultSoftSkills())
}

// Lookup maps any known surface form to its canonical skill.
func (o *Ontology) Lookup(surface string) (SkillDefinition, bool) {
	id, ok := o.byVariation[Normalize(surface)]
	if !ok {
		return SkillDefinition{}, false
	}
	return o.Get(id)
}

// Get returns the skill with the given canonical id.
func (o *Ontology) Get(id string) (SkillDefinition, bool) {
	idx, ok := o.byID[Normalize(id)]
	if !ok {
		return SkillDefinition{}, false
	}
	return o.defs[idx].clone(), true
}

// Has reports whether id is a known canonical id.
func (o *Ontology) Has(id string) bool {
	_, ok := o.byID[Normalize(id)]
	return ok
}

// IsSoft reports whether the canonical id is classified as a soft skill.
func (o *Ontology) IsSoft(id string) bool {
	idx, ok := o.byID[Normalize(id)]
	return ok && o.defs[idx].Kind == KindSoft
}

// Definitions returns all skills in definition order.
func (o *Ontology) Definitions() []SkillDefinition {
	out := make([]SkillDefinition, 0, len(o.defs))
	for _, d := range o.defs {
		out = append(out, d.clone())
	}
	return out
}

// Variations enumerates every (variation, owner) pair sorted by text.
func (o *Ontology) Variations() []Variation {
	out := make([]Variation, len(o.variations))
	copy(out, o.variations)
	return out
}

// Len returns the number of skills.
func (o *Ontology) Len() int {
	return len(o.defs)
}

// Normalize lowercases and collapses whitespace in a surface form.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func (d SkillDefinition) clone() SkillDefinition {
	d.Variations = append([]string(nil), d.Variations...)
	return d
}
