package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spigell/ats-screener/internal/extraction"
	"github.com/spigell/ats-screener/internal/sections"
)

func (s *Scorer) highlightsFor(skills extraction.ExtractedSkills, analysis sections.Analysis) []string {
	out := []string{}

	if n := len(analysis.Experience); n > 0 {
		out = append(out, fmt.Sprintf("Strong experience with %d professional roles", n))
	}
	if n := len(skills.Technical); n > s.comprehensiveSkills {
		out = append(out, fmt.Sprintf("Comprehensive technical skill set (%d skills identified)", n))
	}

	all := skills.All()
	for _, h := range s.highlights {
		for _, id := range all {
			if strings.Contains(id, h.Skill) {
				out = append(out, h.Text)
				break
			}
		}
	}
	return out
}

func (s *Scorer) gaps(b Breakdown) []string {
	out := []string{}

	exp := b.Experience
	if gap := float64(exp.RequiredYears) - exp.TotalYears; gap > 0 {
		out = append(out, fmt.Sprintf("Experience: %s years vs required %d years (gap: %s years)",
			formatYears(exp.TotalYears), exp.RequiredYears, formatYears(gap)))
	}

	if b.Skills.RequiredScore < s.requiredTarget {
		out = append(out, fmt.Sprintf("Required skills match: %.1f%% (target: %s%%+)",
			b.Skills.RequiredScore, formatYears(s.requiredTarget)))
	}

	for _, r := range s.rules.rules {
		if !b.SpecificRequirements[r.Name].Status.Passed() {
			out = append(out, "Missing: "+r.Title)
		}
	}
	return out
}

func (s *Scorer) recommendations(b Breakdown) []string {
	out := []string{}

	exp := b.Experience
	if gap := float64(exp.RequiredYears) - exp.TotalYears; gap > 0 {
		out = append(out, fmt.Sprintf("Add %s more years of experience or highlight relevant projects/freelance work", formatYears(gap)))
	}

	if b.Skills.RequiredScore < s.requiredTarget {
		out = append(out, "Add more required technical skills to your resume")
	}

	for _, r := range s.rules.rules {
		if r.Recommendation == "" {
			continue
		}
		if !b.SpecificRequirements[r.Name].Status.Passed() {
			out = append(out, r.Recommendation)
		}
	}
	return out
}

func (s *Scorer) detailedMatches(b Breakdown) []DetailedMatch {
	out := make([]DetailedMatch, 0, 2+s.rules.Len())

	exp := b.Experience
	out = append(out, DetailedMatch{
		Requirement: fmt.Sprintf("%d+ years experience", exp.RequiredYears),
		Matched:     exp.Status.Glyph(),
		Details:     fmt.Sprintf("Resume shows %s years experience", formatYears(exp.TotalYears)),
		Confidence:  experienceConfidence(exp),
		Explanation: explainExperience(exp),
	})

	skills := b.Skills
	out = append(out, DetailedMatch{
		Requirement: "Required technical skills",
		Matched:     fmt.Sprintf("%d/%d matched", skills.RequiredMatches, skills.TotalRequired),
		Details:     fmt.Sprintf("Match rate: %.1f%%", skills.RequiredScore),
		Confidence:  skills.RequiredScore / 100,
		Explanation: explainSkills(skills),
	})

	for _, r := range s.rules.rules {
		check := b.SpecificRequirements[r.Name]
		confidence := 0.0
		if check.Status.Passed() {
			confidence = 1
		}
		out = append(out, DetailedMatch{
			Requirement: r.Title,
			Matched:     check.Status.Glyph(),
			Details:     check.Details,
			Confidence:  confidence,
			Explanation: explainCheck(check),
		})
	}
	return out
}

// experienceConfidence tiers the actual/required ratio at 1.0, 0.8 and 0.6.
func experienceConfidence(exp ExperienceScore) float64 {
	actual, required := exp.TotalYears, float64(exp.RequiredYears)
	switch {
	case actual >= required:
		return 1.0
	case actual >= required*0.8:
		return 0.8
	case actual >= required*0.6:
		return 0.6
	default:
		return 0.3
	}
}

func explainExperience(exp ExperienceScore) string {
	actual, required := exp.TotalYears, float64(exp.RequiredYears)
	short := formatYears(required - actual)
	switch {
	case actual >= required:
		return fmt.Sprintf("✅ Excellent! %s years exceeds the %d year requirement.", formatYears(actual), exp.RequiredYears)
	case actual >= required*0.8:
		return fmt.Sprintf("⚠️ Close match: %s years is %s years short of %d required.", formatYears(actual), short, exp.RequiredYears)
	default:
		return fmt.Sprintf("❌ Significant gap: %s years is %s years short of %d required.", formatYears(actual), short, exp.RequiredYears)
	}
}

func explainSkills(skills SkillsScore) string {
	counts := fmt.Sprintf("%d/%d required skills found.", skills.RequiredMatches, skills.TotalRequired)
	switch score := skills.RequiredScore; {
	case score >= 90:
		return "✅ Excellent skills match! " + counts
	case score >= 70:
		return "👍 Good skills match: " + counts
	case score >= 50:
		return "⚠️ Moderate skills match: " + counts
	default:
		return "❌ Limited skills match: " + counts
	}
}

func explainCheck(check CheckResult) string {
	switch check.Status {
	case StatusPass, StatusMet:
		return "✅ Strong evidence found: " + check.Details
	case StatusPartial:
		return "⚠️ Partial evidence: " + check.Details
	default:
		return "❌ No evidence found: " + check.Details
	}
}

// formatYears prints at most one decimal and drops a trailing ".0".
func formatYears(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
