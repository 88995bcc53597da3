// Package scoring computes an explainable ATS match score from extracted
// skills, section analysis and job requirements.
package scoring

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/extraction"
	"github.com/spigell/ats-screener/internal/requirements"
	"github.com/spigell/ats-screener/internal/sections"
)

// Highlight names a flagship skill and the text shown when a resume has it.
// Skill matches any extracted id containing it.
type Highlight struct {
	Skill string `mapstructure:"skill" json:"skill" validate:"required"`
	Text  string `mapstructure:"text" json:"text" validate:"required"`
}

// DefaultHighlights returns the flagship skill highlights.
func DefaultHighlights() []Highlight {
	return []Highlight{
		{Skill: "swift", Text: "Expert Swift and iOS development experience"},
		{Skill: "firebase", Text: "Strong Firebase and cloud integration experience"},
		{Skill: "agile", Text: "Agile methodology and team collaboration experience"},
		{Skill: "accessibility", Text: "Accessibility and inclusive design experience"},
		{Skill: "testing", Text: "Comprehensive testing and quality assurance experience"},
	}
}

// Config holds everything the scorer needs besides its inputs.
type Config struct {
	Weights    Weights     `mapstructure:"weights"`
	Rules      []Rule      `mapstructure:"checklist"`
	Highlights []Highlight `mapstructure:"highlights"`

	// RequiredTarget is the required-skill match percentage below which a gap
	// is reported.
	RequiredTarget float64 `mapstructure:"required-target" validate:"gte=0,lte=100"`
	// ComprehensiveSkills is the skill count above which the skill set is
	// highlighted as comprehensive.
	ComprehensiveSkills int `mapstructure:"comprehensive-skills" validate:"gte=0"`
}

// DefaultConfig returns the reference scoring setup.
func DefaultConfig() Config {
	return Config{
		Weights:             DefaultWeights(),
		Rules:               DefaultRules(),
		Highlights:          DefaultHighlights(),
		RequiredTarget:      80,
		ComprehensiveSkills: 50,
	}
}

// Scorer is stateless after construction and safe for concurrent use.
type Scorer struct {
	weights             Weights
	rules               *RuleTable
	highlights          []Highlight
	requiredTarget      float64
	comprehensiveSkills int
	logger              *zap.Logger
}

// New validates cfg and builds a scorer. Every configuration problem is
// reported here so scoring itself cannot fail.
func New(cfg Config, log *zap.Logger) (*Scorer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	for _, h := range cfg.Highlights {
		if err := validate.Struct(h); err != nil {
			return nil, fmt.Errorf("invalid highlight %q: %w", h.Skill, err)
		}
	}

	rules, err := NewRuleTable(cfg.Rules)
	if err != nil {
		return nil, err
	}

	return &Scorer{
		weights:             cfg.Weights,
		rules:               rules,
		highlights:          append([]Highlight(nil), cfg.Highlights...),
		requiredTarget:      cfg.RequiredTarget,
		comprehensiveSkills: cfg.ComprehensiveSkills,
		logger:              log,
	}, nil
}

// Rules returns the active checklist.
func (s *Scorer) Rules() *RuleTable {
	return s.rules
}

// Weights returns the active weights.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score computes the result for one resume against one job.
func (s *Scorer) Score(skills extraction.ExtractedSkills, analysis sections.Analysis, reqs requirements.JobRequirements) MatchResult {
	reqs = reqs.Normalized()
	breakdown := s.Breakdown(skills, analysis, reqs)

	result := MatchResult{
		OverallScore:    s.Overall(breakdown),
		Breakdown:       breakdown,
		Highlights:      s.highlightsFor(skills, analysis),
		Gaps:            s.gaps(breakdown),
		Recommendations: s.recommendations(breakdown),
		DetailedMatches: s.detailedMatches(breakdown),
	}

	s.logger.Debug("resume scored",
		zap.Float64("overall", result.OverallScore),
		zap.Float64("experience", breakdown.Experience.Score),
		zap.Float64("required", breakdown.Skills.RequiredScore),
		zap.Float64("preferred", breakdown.Skills.PreferredScore),
		zap.Float64("specific", breakdown.SpecificScore),
	)
	return result
}

// Breakdown computes every component score.
func (s *Scorer) Breakdown(skills extraction.ExtractedSkills, analysis sections.Analysis, reqs requirements.JobRequirements) Breakdown {
	checks := s.rules.Evaluate(skills, analysis)
	passed := 0
	for _, c := range checks {
		if c.Status.Passed() {
			passed++
		}
	}

	return Breakdown{
		Experience:           experienceScore(analysis.ExperienceYears, reqs.ExperienceYears),
		Skills:               skillsScore(skills, reqs),
		SpecificRequirements: checks,
		SpecificScore:        ratio(passed, len(checks)) * 100,
	}
}

// Overall combines component scores with the configured weights, clamped to [0, 100].
func (s *Scorer) Overall(b Breakdown) float64 {
	w := s.weights
	skills := w.Required*b.Skills.RequiredScore + w.Preferred*b.Skills.PreferredScore
	total := w.Experience*b.Experience.Score + w.Skills*skills + w.Specific*b.SpecificScore
	return clamp(total, 0, 100)
}

func experienceScore(total float64, required int) ExperienceScore {
	if total < 0 {
		total = 0
	}

	out := ExperienceScore{
		TotalYears:    total,
		RequiredYears: required,
		Score:         100,
		Status:        experienceStatus(total, required),
	}
	if required > 0 {
		out.Score = min(total/float64(required), 1) * 100
	}
	return out
}

func experienceStatus(actual float64, required int) Status {
	switch r := float64(required); {
	case actual >= r:
		return StatusMet
	case actual >= 0.8*r:
		return StatusPartial
	default:
		return StatusGap
	}
}

func skillsScore(skills extraction.ExtractedSkills, reqs requirements.JobRequirements) SkillsScore {
	reqMatched, reqMissing := intersect(skills, reqs.RequiredSkills)
	prefMatched, prefMissing := intersect(skills, reqs.PreferredSkills)

	return SkillsScore{
		RequiredMatches:  reqMatched,
		PreferredMatches: prefMatched,
		TotalRequired:    len(reqs.RequiredSkills),
		TotalPreferred:   len(reqs.PreferredSkills),
		RequiredScore:    ratio(reqMatched, len(reqs.RequiredSkills)) * 100,
		PreferredScore:   ratio(prefMatched, len(reqs.PreferredSkills)) * 100,
		TotalSkillsFound: len(skills.Technical),
		MissingRequired:  reqMissing,
		MissingPreferred: prefMissing,
	}
}

// intersect counts wanted ids present in either skill set. Requirements may
// name soft skills such as agile, so both sets count.
func intersect(skills extraction.ExtractedSkills, wanted []string) (int, []string) {
	matched := 0
	missing := []string{}
	for _, id := range wanted {
		if skills.Has(id) {
			matched++
			continue
		}
		missing = append(missing, id)
	}
	return matched, missing
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
