package scoring

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/ats-screener/internal/extraction"
	"github.com/spigell/ats-screener/internal/ontology"
	"github.com/spigell/ats-screener/internal/requirements"
	"github.com/spigell/ats-screener/internal/sections"
)

const scenario = "5 years as iOS engineer using Swift, SwiftUI, XCTest, and Jenkins for CI/CD, Agile team collaboration"

func newScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := New(DefaultConfig(), nil)
	require.NoError(t, err)
	return s
}

func TestScoreScenario(t *testing.T) {
	extractor := extraction.New(ontology.Default(), extraction.DefaultConfig(), nil)
	analyzer := sections.New(sections.Config{Now: func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }}, nil)

	result := newScorer(t).Score(extractor.Extract(scenario), analyzer.Analyze(scenario), requirements.JobRequirements{
		ExperienceYears: 5,
		RequiredSkills:  []string{"swift", "ios"},
		PreferredSkills: []string{"jenkins"},
	})

	skills := result.Breakdown.Skills
	assert.Equal(t, 100.0, skills.RequiredScore)
	assert.Equal(t, 100.0, skills.PreferredScore)
	assert.Empty(t, skills.MissingRequired)

	for _, name := range []string{"ios_development", "swift_experience", "testing", "cicd", "team_collaboration"} {
		assert.Equal(t, StatusPass, result.Breakdown.SpecificRequirements[name].Status, name)
	}

	assert.GreaterOrEqual(t, result.OverallScore, 0.0)
	assert.LessOrEqual(t, result.OverallScore, 100.0)
	assert.Contains(t, result.Highlights, "Expert Swift and iOS development experience")
	assert.Contains(t, result.Highlights, "Agile methodology and team collaboration experience")
	assert.Len(t, result.DetailedMatches, 2+len(DefaultRules()))
}

func TestScoreEmptyInput(t *testing.T) {
	result := newScorer(t).Score(extraction.ExtractedSkills{}, sections.Empty(), requirements.Defaults())

	assert.Equal(t, 0.0, result.OverallScore)
	assert.Equal(t, StatusGap, result.Breakdown.Experience.Status)
	assert.Equal(t, 0.0, result.Breakdown.SpecificScore)

	assert.Contains(t, result.Gaps, "Experience: 0 years vs required 7 years (gap: 7 years)")
	assert.Contains(t, result.Gaps, "Required skills match: 0.0% (target: 80%+)")
	assert.Contains(t, result.Gaps, "Missing: iOS Development")
	assert.Contains(t, result.Gaps, "Missing: App Store")
	assert.Contains(t, result.Gaps, "Missing: CI/CD")

	assert.Contains(t, result.Recommendations, "Add 7 more years of experience or highlight relevant projects/freelance work")
	assert.Contains(t, result.Recommendations, "Include accessibility experience (VoiceOver, WCAG compliance, Dynamic Type)")
	assert.NotNil(t, result.Highlights)

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"overall_score", "breakdown", "highlights", "gaps", "recommendations", "detailed_matches"} {
		assert.Contains(t, decoded, key)
		assert.NotNil(t, decoded[key], key)
	}
}

func TestExperienceComponent(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		required   int
		score      float64
		status     Status
		confidence float64
	}{
		{name: "zero requirement", total: 0, required: 0, score: 100, status: StatusMet, confidence: 1},
		{name: "zero requirement with years", total: 12, required: 0, score: 100, status: StatusMet, confidence: 1},
		{name: "exceeds", total: 9, required: 7, score: 100, status: StatusMet, confidence: 1},
		{name: "partial", total: 6, required: 7, score: 600.0 / 7, status: StatusPartial, confidence: 0.8},
		{name: "gap", total: 4.5, required: 7, score: 450.0 / 7, status: StatusGap, confidence: 0.6},
		{name: "large gap", total: 1, required: 7, score: 100.0 / 7, status: StatusGap, confidence: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := experienceScore(tt.total, tt.required)
			assert.InDelta(t, tt.score, got.Score, 1e-9)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.confidence, experienceConfidence(got))
		})
	}
}

func TestRequiredScoreMonotonic(t *testing.T) {
	s := newScorer(t)
	reqs := requirements.JobRequirements{
		ExperienceYears: 3,
		RequiredSkills:  []string{"swift", "swiftui", "uikit", "xctest", "fastlane"},
	}

	var found []string
	prevRequired, prevOverall := -1.0, -1.0
	for _, id := range append([]string{"graphql"}, reqs.RequiredSkills...) {
		found = append(found, id)
		result := s.Score(extraction.NewExtractedSkills(found, nil), sections.Empty(), reqs)

		assert.GreaterOrEqual(t, result.Breakdown.Skills.RequiredScore, prevRequired)
		assert.GreaterOrEqual(t, result.OverallScore, prevOverall)
		prevRequired, prevOverall = result.Breakdown.Skills.RequiredScore, result.OverallScore
	}
	assert.Equal(t, 100.0, prevRequired)
}

func TestSoftSkillsCountForRequirements(t *testing.T) {
	result := newScorer(t).Score(
		extraction.NewExtractedSkills([]string{"swift"}, []string{"agile"}),
		sections.Empty(),
		requirements.JobRequirements{RequiredSkills: []string{"swift"}, PreferredSkills: []string{"agile", "firebase"}},
	)

	assert.Equal(t, 1, result.Breakdown.Skills.PreferredMatches)
	assert.Equal(t, 50.0, result.Breakdown.Skills.PreferredScore)
	assert.Equal(t, []string{"firebase"}, result.Breakdown.Skills.MissingPreferred)
	assert.Equal(t, 1, result.Breakdown.Skills.TotalSkillsFound)
}

func TestOverallWeightsAndClamp(t *testing.T) {
	s := newScorer(t)

	b := Breakdown{
		Experience:    ExperienceScore{Score: 100},
		Skills:        SkillsScore{RequiredScore: 50, PreferredScore: 100},
		SpecificScore: 50,
	}
	assert.InDelta(t, 25+0.35*(35+30)+20, s.Overall(b), 1e-9)

	b = Breakdown{
		Experience:    ExperienceScore{Score: 400},
		Skills:        SkillsScore{RequiredScore: 400, PreferredScore: 400},
		SpecificScore: 400,
	}
	assert.Equal(t, 100.0, s.Overall(b))

	b.Experience.Score, b.Skills.RequiredScore = -500, -500
	assert.GreaterOrEqual(t, s.Overall(b), 0.0)
}

func TestEducationRule(t *testing.T) {
	analysis := sections.Empty()
	analysis.Education = []sections.Education{{Institution: "MIT", Degree: "BS", Field: "Computer Science"}}

	result := newScorer(t).Score(extraction.ExtractedSkills{}, analysis, requirements.Defaults())

	assert.Equal(t, StatusPass, result.Breakdown.SpecificRequirements["education"].Status)
	assert.Equal(t, "Education requirements met", result.Breakdown.SpecificRequirements["education"].Details)
	assert.NotContains(t, result.Gaps, "Missing: Education")
}

func TestCustomRuleTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules = []Rule{
		{Name: "backend_language", Kind: KindSkills, Pool: PoolAny, Skills: []string{"Go", "Rust"}},
		{Name: "leadership", Kind: KindSkills, Pool: PoolSoft, Skills: []string{"leadership", "mentoring"}, Recommendation: "Mention people leadership"},
	}
	s, err := New(cfg, nil)
	require.NoError(t, err)

	result := s.Score(extraction.NewExtractedSkills([]string{"go"}, nil), sections.Empty(), requirements.JobRequirements{})

	checks := result.Breakdown.SpecificRequirements
	require.Len(t, checks, 2)
	assert.Equal(t, StatusPass, checks["backend_language"].Status)
	assert.Equal(t, "Backend Language requirement met", checks["backend_language"].Details)
	assert.Equal(t, StatusFail, checks["leadership"].Status)
	assert.Equal(t, 50.0, result.Breakdown.SpecificScore)
	assert.Contains(t, result.Gaps, "Missing: Leadership")
	assert.Contains(t, result.Recommendations, "Mention people leadership")
}

func TestWeightsValidate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())

	w := DefaultWeights()
	w.Specific = 0.5
	assert.True(t, errors.Is(w.Validate(), ErrWeightsSum))

	w = DefaultWeights()
	w.Required, w.Preferred = 0.5, 0.4
	assert.True(t, errors.Is(w.Validate(), ErrWeightsSum))

	w = DefaultWeights()
	w.Experience, w.Skills = -0.25, 0.85
	assert.Error(t, w.Validate())

	cfg := DefaultConfig()
	cfg.Weights.Experience = 0.3
	_, err := New(cfg, nil)
	assert.True(t, errors.Is(err, ErrWeightsSum))
}

func TestNewRuleTableErrors(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{name: "empty", rules: nil},
		{name: "missing name", rules: []Rule{{Kind: KindSkills, Skills: []string{"swift"}}}},
		{name: "unknown kind", rules: []Rule{{Name: "a", Kind: "vibes", Skills: []string{"swift"}}}},
		{name: "unknown pool", rules: []Rule{{Name: "a", Kind: KindSkills, Pool: "all", Skills: []string{"swift"}}}},
		{name: "no skills", rules: []Rule{{Name: "a", Kind: KindSkills}}},
		{name: "blank skill", rules: []Rule{{Name: "a", Kind: KindSkills, Skills: []string{""}}}},
		{name: "duplicate", rules: []Rule{
			{Name: "a", Kind: KindEducation},
			{Name: "a", Kind: KindEducation},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRuleTable(tt.rules)
			assert.Error(t, err)
		})
	}
}

func TestDefaultRulesKnownToOntology(t *testing.T) {
	table, err := NewRuleTable(DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, 9, table.Len())
	assert.Empty(t, table.Unknown(ontology.Default()))

	table, err = NewRuleTable([]Rule{{Name: "x", Kind: KindSkills, Skills: []string{"cobol"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"x: cobol"}, table.Unknown(ontology.Default()))
}

func TestDecodeRules(t *testing.T) {
	raw := []any{
		map[string]any{
			"name":           "kotlin",
			"kind":           "skills",
			"pool":           "technical",
			"skills":         []any{"kotlin", "jetpack compose"},
			"recommendation": "List Android work",
		},
		map[string]any{"name": "education", "kind": "education"},
	}

	rules, err := DecodeRules(raw)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, KindSkills, rules[0].Kind)
	assert.Equal(t, []string{"kotlin", "jetpack compose"}, rules[0].Skills)
	assert.Equal(t, "List Android work", rules[0].Recommendation)

	rules, err = DecodeRules(nil)
	require.NoError(t, err)
	assert.Nil(t, rules)

	_, err = DecodeRules("not a list")
	assert.Error(t, err)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "App Store", Title("app_store"))
	assert.Equal(t, "Team Collaboration", Title("team_collaboration"))
}

func TestFormatYears(t *testing.T) {
	assert.Equal(t, "4.5", formatYears(4.5))
	assert.Equal(t, "7", formatYears(7))
	assert.Equal(t, "2.3", formatYears(2.33333))
}
