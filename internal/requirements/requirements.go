// Package requirements describes what a job asks for and derives it from a
// plain-text job description.
package requirements

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/ats-screener/internal/extraction"
	"github.com/spigell/ats-screener/internal/ontology"
)

// MaxExperienceYears bounds the experience a job may ask for.
const MaxExperienceYears = 50

var validate = validator.New()

// JobRequirements is what a resume is scored against.
type JobRequirements struct {
	ExperienceYears int      `mapstructure:"experience-years" json:"experience_years" validate:"gte=0,lte=50"`
	RequiredSkills  []string `mapstructure:"required-skills" json:"required_skills" validate:"dive,required"`
	PreferredSkills []string `mapstructure:"preferred-skills" json:"preferred_skills" validate:"dive,required"`
}

// Defaults returns the senior iOS engineer requirements.
func Defaults() JobRequirements {
	return JobRequirements{
		ExperienceYears: 7,
		RequiredSkills:  []string{"swift", "swiftui", "uikit", "ios", "xctest", "fastlane"},
		PreferredSkills: []string{"firebase", "jenkins", "github actions", "agile", "accessibility"},
	}
}

// Validate checks ranges and blank skill names.
func (r JobRequirements) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid job requirements: %w", err)
	}
	return nil
}

// Normalized returns a copy with skill ids cleaned and deduplicated in
// order of appearance. A skill listed as required is dropped from preferred.
func (r JobRequirements) Normalized() JobRequirements {
	if r.ExperienceYears < 0 {
		r.ExperienceYears = 0
	}

	required := normalizeIDs(r.RequiredSkills, nil)
	exclude := make(map[string]struct{}, len(required))
	for _, id := range required {
		exclude[id] = struct{}{}
	}

	return JobRequirements{
		ExperienceYears: r.ExperienceYears,
		RequiredSkills:  required,
		PreferredSkills: normalizeIDs(r.PreferredSkills, exclude),
	}
}

func normalizeIDs(ids []string, exclude map[string]struct{}) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = ontology.Normalize(id)
		if id == "" {
			continue
		}
		if _, ok := exclude[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

var (
	yearsPattern = regexp.MustCompile(`(?i)\b(\d{1,2})\s*\+?\s*(?:-\s*\d{1,2}\s*)?(?:years?|yrs?)\b`)

	preferredHeading = regexp.MustCompile(`(?i)^\W*(?:preferred|nice[\s-]to[\s-]have|bonus(?: points)?|pluses|desired)\b`)
	requiredHeading  = regexp.MustCompile(`(?i)^\W*(?:required|requirements|must[\s-]have|qualifications|what you(?:'ll)? need)\b`)
)

// maxHeadingWords keeps ordinary sentences mentioning "preferred" from
// switching sections.
const maxHeadingWords = 6

// Parse derives requirements from a job description. Years come from the
// largest "N+ years" phrase. Skills after a "preferred" or "nice to have"
// heading are preferred, all others are required. Skills must be mentioned
// literally; near spellings do not count. Any part that cannot be found is
// taken from fallback.
func Parse(text string, e *extraction.Extractor, fallback JobRequirements) JobRequirements {
	fallback = fallback.Normalized()
	if strings.TrimSpace(text) == "" {
		return fallback
	}

	requiredText, preferredText := split(text)
	strict := e.Strict()

	out := JobRequirements{
		ExperienceYears: years(text),
		RequiredSkills:  strict.Extract(requiredText).All(),
		PreferredSkills: strict.Extract(preferredText).All(),
	}
	if out.ExperienceYears == 0 {
		out.ExperienceYears = fallback.ExperienceYears
	}
	if len(out.RequiredSkills) == 0 {
		out.RequiredSkills = fallback.RequiredSkills
	}
	if len(out.PreferredSkills) == 0 {
		out.PreferredSkills = fallback.PreferredSkills
	}
	return out.Normalized()
}

func years(text string) int {
	best := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > MaxExperienceYears {
			continue
		}
		best = max(best, n)
	}
	return best
}

func split(text string) (required, preferred string) {
	var req, pref []string
	inPreferred := false
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if len(strings.Fields(line)) <= maxHeadingWords {
			switch {
			case preferredHeading.MatchString(line):
				inPreferred = true
			case requiredHeading.MatchString(line):
				inPreferred = false
			}
		}
		if inPreferred {
			pref = append(pref, line)
		} else {
			req = append(req, line)
		}
	}
	return strings.Join(req, "\n"), strings.Join(pref, "\n")
}
