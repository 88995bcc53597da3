package scoring

import (
	"fmt"

	"github.com/spigell/ats-screener/internal/ontology"
	"github.com/spigell/ats-screener/internal/similarity"
)

// PartialThreshold is the minimum similarity for a near miss.
const PartialThreshold = 70

// Match types reported by SkillBreakdown.
const (
	MatchExact   = "exact"
	MatchFuzzy   = "fuzzy"
	MatchMissing = "missing"
)

// SkillEvidence explains how one job skill relates to the resume.
type SkillEvidence struct {
	Skill       string  `json:"skill"`
	FoundSkill  string  `json:"found_skill,omitempty"`
	Confidence  float64 `json:"confidence"`
	MatchType   string  `json:"match_type"`
	Explanation string  `json:"explanation"`
}

// SkillBreakdown splits job skills into matched, near-miss and missing.
type SkillBreakdown struct {
	Matched    []SkillEvidence    `json:"matched_skills"`
	Partial    []SkillEvidence    `json:"partial_matches"`
	Missing    []SkillEvidence    `json:"missing_skills"`
	Confidence map[string]float64 `json:"confidence_scores"`
}

// BreakdownSkills compares each job skill with the resume skills. A skill
// that is not present exactly is a partial match when some resume skill has
// a similarity ratio of at least PartialThreshold.
func BreakdownSkills(resume []string, job []string) SkillBreakdown {
	out := SkillBreakdown{
		Matched:    []SkillEvidence{},
		Partial:    []SkillEvidence{},
		Missing:    []SkillEvidence{},
		Confidence: make(map[string]float64, len(job)),
	}

	have := make(map[string]struct{}, len(resume))
	for _, s := range resume {
		have[ontology.Normalize(s)] = struct{}{}
	}

	for _, skill := range job {
		key := ontology.Normalize(skill)
		if _, ok := have[key]; ok {
			out.Matched = append(out.Matched, SkillEvidence{
				Skill:       skill,
				Confidence:  1,
				MatchType:   MatchExact,
				Explanation: fmt.Sprintf("✅ Exact match found for '%s'", skill),
			})
			out.Confidence[skill] = 1
			continue
		}

		best, bestScore := "", 0.0
		for _, candidate := range resume {
			score := similarity.Ratio(key, ontology.Normalize(candidate))
			if score >= PartialThreshold && score > bestScore {
				best, bestScore = candidate, score
			}
		}

		if best == "" {
			out.Missing = append(out.Missing, SkillEvidence{
				Skill:       skill,
				MatchType:   MatchMissing,
				Explanation: fmt.Sprintf("❌ No match found for '%s'", skill),
			})
			out.Confidence[skill] = 0
			continue
		}

		out.Partial = append(out.Partial, SkillEvidence{
			Skill:       skill,
			FoundSkill:  best,
			Confidence:  bestScore / 100,
			MatchType:   MatchFuzzy,
			Explanation: fmt.Sprintf("⚠️ Partial match: '%s' similar to '%s' (%.0f%% similarity)", skill, best, bestScore),
		})
		out.Confidence[skill] = bestScore / 100
	}
	return out
}
