package ontology

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

// Entry is the configuration form of a skill definition.
type Entry struct {
	ID         string   `mapstructure:"id" validate:"required"`
	Variations []string `mapstructure:"variations"`
	Category   string   `mapstructure:"category" validate:"required"`
	Weight     float64  `mapstructure:"weight" validate:"gte=0,lte=1"`
}

func (e Entry) definition() (SkillDefinition, error) {
	if err := validate.Struct(e); err != nil {
		return SkillDefinition{}, err
	}

	id := Normalize(e.ID)
	if id == "" {
		return SkillDefinition{}, fmt.Errorf("id is blank")
	}

	category := Category(Normalize(e.Category))
	if _, ok := categories[category]; !ok {
		return SkillDefinition{}, fmt.Errorf("%w: %s", ErrUnknownCategory, e.Category)
	}

	seen := map[string]struct{}{id: {}}
	variations := []string{id}
	for _, v := range e.Variations {
		v = Normalize(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		variations = append(variations, v)
	}
	sort.Strings(variations)

	return SkillDefinition{
		ID:         id,
		Variations: variations,
		Category:   category,
		Weight:     e.Weight,
		Kind:       KindTechnical,
	}, nil
}

// DecodeEntries decodes raw config values (as produced by viper) into entries.
func DecodeEntries(raw any) ([]Entry, error) {
	if raw == nil {
		return nil, nil
	}

	var entries []Entry
	if err := mapstructure.Decode(raw, &entries); err != nil {
		return nil, fmt.Errorf("decoding ontology entries: %w", err)
	}
	return entries, nil
}

// Merge returns base with extra applied on top. An extra entry with an id
// already present in base replaces it in place, new ids are appended.
func Merge(base, extra []Entry) []Entry {
	out := make([]Entry, len(base))
	copy(out, base)

	index := make(map[string]int, len(out))
	for i, e := range out {
		index[Normalize(e.ID)] = i
	}

	for _, e := range extra {
		if i, ok := index[Normalize(e.ID)]; ok {
			out[i] = e
			continue
		}
		index[Normalize(e.ID)] = len(out)
		out = append(out, e)
	}
	return out
}
