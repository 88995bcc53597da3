package scoring

// Status is the outcome of one scored dimension.
type Status string

const (
	StatusMet     Status = "met"
	StatusPartial Status = "partial"
	StatusGap     Status = "gap"
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
)

// Glyph renders the status the way reports show it.
func (s Status) Glyph() string {
	switch s {
	case StatusMet, StatusPass:
		return "✅ Yes"
	case StatusPartial:
		return "⚠️ Partial"
	default:
		return "❌ No"
	}
}

// Passed reports whether the status counts as satisfied.
func (s Status) Passed() bool {
	return s == StatusMet || s == StatusPass
}

// ExperienceScore is the experience component of a breakdown.
type ExperienceScore struct {
	TotalYears    float64 `json:"total_years"`
	RequiredYears int     `json:"required_years"`
	Score         float64 `json:"score"`
	Status        Status  `json:"status"`
}

// SkillsScore is the skills component of a breakdown.
type SkillsScore struct {
	RequiredMatches  int      `json:"required_matches"`
	PreferredMatches int      `json:"preferred_matches"`
	TotalRequired    int      `json:"total_required"`
	TotalPreferred   int      `json:"total_preferred"`
	RequiredScore    float64  `json:"required_score"`
	PreferredScore   float64  `json:"preferred_score"`
	TotalSkillsFound int      `json:"total_skills_found"`
	MissingRequired  []string `json:"missing_required"`
	MissingPreferred []string `json:"missing_preferred"`
}

// CheckResult is the outcome of one checklist rule.
type CheckResult struct {
	Status  Status `json:"status"`
	Details string `json:"details"`
}

// Breakdown carries every component score.
type Breakdown struct {
	Experience           ExperienceScore        `json:"experience"`
	Skills               SkillsScore            `json:"skills"`
	SpecificRequirements map[string]CheckResult `json:"specific_requirements"`
	SpecificScore        float64                `json:"specific_score"`
}

// DetailedMatch is one explained row of a result.
type DetailedMatch struct {
	Requirement string  `json:"requirement"`
	Matched     string  `json:"matched"`
	Details     string  `json:"details"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// MatchResult is the scored outcome of one resume against one job.
type MatchResult struct {
	OverallScore    float64         `json:"overall_score"`
	Breakdown       Breakdown       `json:"breakdown"`
	Highlights      []string        `json:"highlights"`
	Gaps            []string        `json:"gaps"`
	Recommendations []string        `json:"recommendations"`
	DetailedMatches []DetailedMatch `json:"detailed_matches"`
}
