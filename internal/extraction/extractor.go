// Package extraction finds canonical skills in free text. Independent
// strategies produce confidence-scored matches which are merged, deduplicated
// and classified as technical or soft.
package extraction

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/logger"
	"github.com/spigell/ats-screener/internal/ontology"
	"github.com/spigell/ats-screener/internal/similarity"
)

// Config tunes the matcher.
type Config struct {
	WordThreshold   float64  `mapstructure:"word-threshold" validate:"gte=0,lte=100"`
	PhraseThreshold float64  `mapstructure:"phrase-threshold" validate:"gte=0,lte=100"`
	MinWordLength   int      `mapstructure:"min-word-length" validate:"gte=1"`
	CandidateLimit  int      `mapstructure:"candidate-limit" validate:"gte=0"`
	ShortVariation  int      `mapstructure:"short-variation" validate:"gte=0"`
	Disabled        []string `mapstructure:"disabled"`

	// Scorers used by the fuzzy word pass. Empty means similarity.Default().
	Scorers []similarity.Scorer `mapstructure:"-"`
}

// DefaultConfig returns the reference thresholds.
func DefaultConfig() Config {
	return Config{
		WordThreshold:   75,
		PhraseThreshold: 80,
		MinWordLength:   3,
		CandidateLimit:  3,
		ShortVariation:  3,
	}
}

// Extractor is safe for concurrent use once constructed.
type Extractor struct {
	ontology   *ontology.Ontology
	cfg        Config
	strategies []Strategy
	logger     *zap.Logger
}

// New builds an extractor with the four strategies in their fixed order.
func New(o *ontology.Ontology, cfg Config, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}

	steps := []Strategy{
		NewExact(),
		NewFuzzy(FuzzyConfig{
			WordThreshold:   cfg.WordThreshold,
			PhraseThreshold: cfg.PhraseThreshold,
			MinWordLength:   cfg.MinWordLength,
			CandidateLimit:  cfg.CandidateLimit,
			ShortVariation:  cfg.ShortVariation,
			Scorers:         cfg.Scorers,
		}),
		NewContext(cfg.ShortVariation),
		NewDirect(cfg.ShortVariation),
	}
	for _, name := range cfg.Disabled {
		DisableByName(steps, strings.TrimSpace(name), "disabled by configuration")
	}

	return &Extractor{ontology: o, cfg: cfg, strategies: steps, logger: log}
}

// Strict returns an extractor with the same ontology and settings but
// without the fuzzy strategy, so only literal mentions count.
func (e *Extractor) Strict() *Extractor {
	cfg := e.cfg
	cfg.Disabled = append(append([]string{}, cfg.Disabled...), StrategyFuzzy)
	return New(e.ontology, cfg, e.logger)
}

// Ontology returns the ontology the extractor matches against.
func (e *Extractor) Ontology() *ontology.Ontology {
	return e.ontology
}

// Matches returns the raw evidence from every enabled strategy.
func (e *Extractor) Matches(text string) []SkillMatch {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	doc := NewDocument(text)
	deps := Deps{Ontology: e.ontology, Logger: e.logger}
	return Run(doc, deps, e.strategies)
}

// Extract returns the deduplicated skills in text with the best confidence
// seen for each. It is a pure function of the text and the ontology.
func (e *Extractor) Extract(text string) ExtractedSkills {
	matches := e.Matches(text)
	skills := Normalize(e.ontology, matches)

	e.logger.Debug("skills extracted",
		zap.String("text", logger.TruncateForLog(text, 80)),
		zap.Int("matches", len(matches)),
		zap.Int("technical", len(skills.Technical)),
		zap.Int("soft", len(skills.Soft)),
	)
	return skills
}

// Describe reports the status of each strategy.
func (e *Extractor) Describe() []Status {
	return Describe(e.strategies)
}

// Normalize collapses matches to canonical ids, keeps the highest
// confidence per id and splits ids by their ontology kind.
func Normalize(o *ontology.Ontology, matches []SkillMatch) ExtractedSkills {
	best := make(map[string]float64)
	for _, m := range matches {
		if !o.Has(m.SkillID) {
			continue
		}
		c := clamp01(m.Confidence)
		if prev, ok := best[m.SkillID]; !ok || c > prev {
			best[m.SkillID] = c
		}
	}

	out := ExtractedSkills{
		Technical:  []string{},
		Soft:       []string{},
		Confidence: best,
	}
	for id := range best {
		if o.IsSoft(id) {
			out.Soft = append(out.Soft, id)
		} else {
			out.Technical = append(out.Technical, id)
		}
	}
	sort.Strings(out.Technical)
	sort.Strings(out.Soft)

	if len(best) == 0 {
		out.Confidence = nil
	}
	return out
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Confidence returns the best confidence seen for each canonical id in text.
func (e *Extractor) Confidence(text string) map[string]float64 {
	return e.Extract(text).Confidence
}
