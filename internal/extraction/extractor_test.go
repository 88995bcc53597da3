package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/ats-screener/internal/ontology"
)

const scenario = "5 years as iOS engineer using Swift, SwiftUI, XCTest, and Jenkins for CI/CD, Agile team collaboration"

func newTestExtractor(t *testing.T, cfg Config) *Extractor {
	t.Helper()
	return New(ontology.Default(), cfg, nil)
}

func TestExtractScenario(t *testing.T) {
	e := newTestExtractor(t, DefaultConfig())

	skills := e.Extract(scenario)

	for _, id := range []string{"swift", "swiftui", "ios", "xctest", "jenkins", "ci/cd"} {
		assert.True(t, skills.HasTechnical(id), "expected technical skill %q in %v", id, skills.Technical)
	}
	for _, id := range []string{"agile", "collaboration"} {
		assert.True(t, skills.HasSoft(id), "expected soft skill %q in %v", id, skills.Soft)
	}
	assert.False(t, skills.HasTechnical("agile"), "lexicon members are never technical")
}

func TestExtractDeterministic(t *testing.T) {
	e := newTestExtractor(t, DefaultConfig())

	first := e.Extract(scenario)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, e.Extract(scenario))
	}
}

func TestExtractSetsDisjoint(t *testing.T) {
	e := newTestExtractor(t, DefaultConfig())
	texts := []string{
		scenario,
		"Led an agile team of five, mentoring juniors and improving communication.",
		"Scrum master with leadership experience, teamwork and collaboration across iOS and backend.",
	}

	for _, text := range texts {
		skills := e.Extract(text)
		soft := make(map[string]struct{}, len(skills.Soft))
		for _, id := range skills.Soft {
			soft[id] = struct{}{}
		}
		for _, id := range skills.Technical {
			_, dup := soft[id]
			assert.False(t, dup, "skill %q is in both sets for %q", id, text)
		}
	}
}

func TestMatchesConfidenceBounds(t *testing.T) {
	e := newTestExtractor(t, DefaultConfig())

	matches := e.Matches(scenario + ". Developed apps with Swift 5.7 and Xcode 14 using MVVM and Core Data.")
	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Confidence, 0.0, "match %+v", m)
		assert.LessOrEqual(t, m.Confidence, 1.0, "match %+v", m)
		assert.NotEmpty(t, m.Strategy)
	}
}

func TestExtractSwiftUIRecall(t *testing.T) {
	e := newTestExtractor(t, DefaultConfig())

	for _, text := range []string{"SwiftUI", "Built screens in SwiftUI.", "swiftui,combine", "SWIFTUI"} {
		assert.True(t, e.Extract(text).HasTechnical("swiftui"), "text %q", text)
	}
}

func TestExtractEmpty(t *testing.T) {
	e := newTestExtractor(t, DefaultConfig())

	for _, text := range []string{"", "   ", "\n\t"} {
		skills := e.Extract(text)
		assert.NotNil(t, skills.Technical)
		assert.NotNil(t, skills.Soft)
		assert.Empty(t, skills.Technical)
		assert.Empty(t, skills.Soft)
		assert.Nil(t, e.Matches(text))
	}
}

func TestExtractVersionedMentions(t *testing.T) {
	e := newTestExtractor(t, DefaultConfig())

	versions := map[string]string{}
	for _, m := range e.Matches("Shipped with Swift 5.7 and Xcode 14.") {
		if m.Version != "" {
			versions[m.SkillID] = m.Version
			assert.Equal(t, 0.95, m.Confidence)
			assert.Equal(t, StrategyFuzzy, m.Strategy)
		}
	}

	assert.Equal(t, map[string]string{"swift": "5.7", "xcode": "14"}, versions)
}

func TestExtractShortVariationBoundaries(t *testing.T) {
	e := newTestExtractor(t, DefaultConfig())

	skills := e.Extract("Attended the audio studio sessions.")
	assert.False(t, skills.Has("att"))
	assert.False(t, skills.Has("ios"))
}

func TestExtractConfidenceKeepsBest(t *testing.T) {
	e := newTestExtractor(t, DefaultConfig())

	confidence := e.Confidence("Responsible for the XCTest suite.")
	require.Contains(t, confidence, "xctest")
	assert.Equal(t, 1.0, confidence["xctest"])
}

func TestDisabledStrategies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disabled = []string{StrategyFuzzy, StrategyContext, " " + StrategyDirect}
	e := newTestExtractor(t, cfg)

	matches := e.Matches(scenario)
	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.Equal(t, StrategyExact, m.Strategy)
	}

	statuses := e.Describe()
	require.Len(t, statuses, 4)
	assert.Equal(t, StrategyExact, statuses[0].Name)
	assert.True(t, statuses[0].Enabled)
	for _, status := range statuses[1:] {
		assert.False(t, status.Enabled, "strategy %s", status.Name)
		assert.Equal(t, "disabled by configuration", status.Reason)
	}
}

func TestStrictSkipsFuzzy(t *testing.T) {
	e := newTestExtractor(t, DefaultConfig())
	strict := e.Strict()

	assert.Contains(t, e.Extract("A friendly team.").Soft, "teamwork")
	assert.NotContains(t, strict.Extract("A friendly team.").Soft, "teamwork")
	assert.Contains(t, strict.Extract("A team player.").Soft, "teamwork")

	for _, m := range strict.Matches(scenario) {
		assert.NotEqual(t, StrategyFuzzy, m.Strategy)
	}

	// The receiver keeps its own strategies.
	for _, status := range e.Describe() {
		assert.True(t, status.Enabled, "strategy %s", status.Name)
	}
}

// The fuzzy word pass scores words with partial ratio, so a word that is
// contained in a longer variation also yields that variation's skill.
func TestFuzzyWordPassMatchesContainedVariations(t *testing.T) {
	e := newTestExtractor(t, DefaultConfig())

	assert.Equal(t, []string{"swift", "swiftui"}, e.Extract("Swift").Technical)

	all := e.Extract("Retrofit").All()
	assert.Contains(t, all, "retrospectives")
}

func TestNormalizeDropsUnknownAndClamps(t *testing.T) {
	o := ontology.Default()

	skills := Normalize(o, []SkillMatch{
		{SkillID: "swift", Confidence: 0.7},
		{SkillID: "swift", Confidence: 1.4},
		{SkillID: "cobol", Confidence: 1},
		{SkillID: "leadership", Confidence: 0.8},
	})

	assert.Equal(t, []string{"swift"}, skills.Technical)
	assert.Equal(t, []string{"leadership"}, skills.Soft)
	assert.Equal(t, map[string]float64{"swift": 1, "leadership": 0.8}, skills.Confidence)
}

func TestRunLogsSteps(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	cfg := DefaultConfig()
	cfg.Disabled = []string{StrategyDirect}
	e := New(ontology.Default(), cfg, zap.New(core))

	e.Extract("Swift developer")

	steps := observed.FilterMessage("strategy step").All()
	require.Len(t, steps, 3)
	assert.Equal(t, StrategyExact, steps[0].ContextMap()["name"])

	disabled := observed.FilterMessage("strategy disabled").All()
	require.Len(t, disabled, 1)
	assert.Equal(t, StrategyDirect, disabled[0].ContextMap()["name"])

	require.Len(t, observed.FilterMessage("skills extracted").All(), 1)
}

func TestNewExtractedSkills(t *testing.T) {
	skills := NewExtractedSkills(
		[]string{"swift", "ios", "swift", ""},
		[]string{"agile", "ios", "agile"},
	)

	assert.Equal(t, []string{"ios", "swift"}, skills.Technical)
	assert.Equal(t, []string{"agile"}, skills.Soft)
	assert.Equal(t, 3, skills.Count())
	assert.Equal(t, []string{"ios", "swift", "agile"}, skills.All())
	assert.True(t, skills.Has("agile"))
	assert.False(t, skills.HasTechnical("agile"))
}
