package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdownSkills(t *testing.T) {
	b := BreakdownSkills([]string{"swift", "SwiftUI", "github actions"}, []string{"Swift", "swiftui", "github action", "kotlin"})

	require.Len(t, b.Matched, 2)
	assert.Equal(t, "Swift", b.Matched[0].Skill)
	assert.Equal(t, MatchExact, b.Matched[0].MatchType)

	require.Len(t, b.Partial, 1)
	assert.Equal(t, "github action", b.Partial[0].Skill)
	assert.Equal(t, "github actions", b.Partial[0].FoundSkill)
	assert.InDelta(t, 13.0/14, b.Partial[0].Confidence, 1e-9)

	require.Len(t, b.Missing, 1)
	assert.Equal(t, "kotlin", b.Missing[0].Skill)
	assert.Equal(t, 0.0, b.Confidence["kotlin"])
	assert.Equal(t, 1.0, b.Confidence["swiftui"])
}

func TestBreakdownSkillsEmpty(t *testing.T) {
	b := BreakdownSkills(nil, nil)

	assert.Empty(t, b.Matched)
	assert.Empty(t, b.Partial)
	assert.Empty(t, b.Missing)
	assert.NotNil(t, b.Matched)
}
