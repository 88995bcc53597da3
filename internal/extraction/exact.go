package extraction

import (
	"strconv"

	"github.com/spigell/ats-screener/internal/textutil"
)

type exactStrategy struct {
	toggle
}

// NewExact creates the strategy that matches every ontology variation as a
// whole phrase, with confidence 1.0.
func NewExact() Strategy {
	return &exactStrategy{}
}

func (s *exactStrategy) Name() string { return StrategyExact }

func (s *exactStrategy) Extract(doc *Document, deps Deps) []SkillMatch {
	var matches []SkillMatch
	for _, v := range deps.Ontology.Variations() {
		if textutil.ContainsPhrase(doc.Clean, v.Text) {
			matches = append(matches, SkillMatch{
				SkillID:     v.SkillID,
				Confidence:  1.0,
				MatchedText: v.Text,
				Strategy:    StrategyExact,
			})
		}
	}
	return matches
}

func (s *exactStrategy) Status() Status {
	return Status{Name: s.Name(), Enabled: s.IsEnabled(), Reason: s.reason, Details: map[string]string{
		"confidence": "1.00",
	}}
}

type directStrategy struct {
	toggle
	shortLen int
}

// NewDirect creates the fallback strategy: the first variation of each skill
// literally present in the text yields a match with confidence 0.9.
// Variations of at most shortLen bytes must stand as whole words.
func NewDirect(shortLen int) Strategy {
	return &directStrategy{shortLen: shortLen}
}

func (s *directStrategy) Name() string { return StrategyDirect }

func (s *directStrategy) Extract(doc *Document, deps Deps) []SkillMatch {
	var matches []SkillMatch
	for _, def := range deps.Ontology.Definitions() {
		if v, ok := firstContained(doc.Clean, def.Variations, s.shortLen); ok {
			matches = append(matches, SkillMatch{
				SkillID:     def.ID,
				Confidence:  0.9,
				MatchedText: v,
				Strategy:    StrategyDirect,
			})
		}
	}
	return matches
}

func (s *directStrategy) Status() Status {
	return Status{Name: s.Name(), Enabled: s.IsEnabled(), Reason: s.reason, Details: map[string]string{
		"confidence":      "0.90",
		"short_variation": strconv.Itoa(s.shortLen),
	}}
}

func firstContained(text string, variations []string, shortLen int) (string, bool) {
	for _, v := range variations {
		if textutil.Contains(text, v, shortLen) {
			return v, true
		}
	}
	return "", false
}
