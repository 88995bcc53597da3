package requirements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/ats-screener/internal/extraction"
	"github.com/spigell/ats-screener/internal/ontology"
)

const jobDescription = `Senior iOS Engineer

We need 5+ years of iOS development experience, 3 years with SwiftUI.

Requirements:
- Swift and SwiftUI
- XCTest

Nice to have:
- Firebase
- Jenkins
`

func newExtractor() *extraction.Extractor {
	return extraction.New(ontology.Default(), extraction.DefaultConfig(), nil)
}

func TestDefaultsValid(t *testing.T) {
	d := Defaults()

	require.NoError(t, d.Validate())
	assert.Equal(t, 7, d.ExperienceYears)
	assert.Equal(t, []string{"swift", "swiftui", "uikit", "ios", "xctest", "fastlane"}, d.RequiredSkills)
	assert.Equal(t, []string{"firebase", "jenkins", "github actions", "agile", "accessibility"}, d.PreferredSkills)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		reqs JobRequirements
	}{
		{name: "negative years", reqs: JobRequirements{ExperienceYears: -1}},
		{name: "too many years", reqs: JobRequirements{ExperienceYears: 51}},
		{name: "blank required", reqs: JobRequirements{RequiredSkills: []string{"swift", ""}}},
		{name: "blank preferred", reqs: JobRequirements{PreferredSkills: []string{""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.reqs.Validate())
		})
	}
}

func TestNormalized(t *testing.T) {
	r := JobRequirements{
		ExperienceYears: -3,
		RequiredSkills:  []string{" Swift ", "swift", "SwiftUI", ""},
		PreferredSkills: []string{"swift", "GitHub  Actions", "github actions"},
	}.Normalized()

	assert.Equal(t, 0, r.ExperienceYears)
	assert.Equal(t, []string{"swift", "swiftui"}, r.RequiredSkills)
	assert.Equal(t, []string{"github actions"}, r.PreferredSkills)
}

func TestParse(t *testing.T) {
	r := Parse(jobDescription, newExtractor(), Defaults())

	assert.Equal(t, 5, r.ExperienceYears)
	assert.Subset(t, r.RequiredSkills, []string{"ios", "swift", "swiftui", "xctest"})
	assert.Subset(t, r.PreferredSkills, []string{"firebase", "jenkins"})
	assert.NotContains(t, r.RequiredSkills, "jenkins")
	for _, id := range r.PreferredSkills {
		assert.NotContains(t, r.RequiredSkills, id)
	}
}

func TestParseFallback(t *testing.T) {
	fallback := Defaults()

	assert.Equal(t, fallback.Normalized(), Parse("", newExtractor(), fallback))

	r := Parse("We are a friendly team in Berlin.", newExtractor(), fallback)
	assert.Equal(t, 7, r.ExperienceYears)
	assert.Equal(t, fallback.RequiredSkills, r.RequiredSkills)
}

func TestParseIgnoresNearSpellings(t *testing.T) {
	fallback := Defaults()
	e := newExtractor()

	// The fuzzy matcher reads "team" as teamwork in a resume.
	require.Contains(t, e.Extract("We are a friendly team in Berlin.").Soft, "teamwork")

	r := Parse("We are a friendly team in Berlin.", e, fallback)
	assert.Equal(t, fallback.RequiredSkills, r.RequiredSkills)
	assert.Equal(t, fallback.PreferredSkills, r.PreferredSkills)

	r = Parse("Must know Swift and work as a team player.", e, fallback)
	assert.Subset(t, r.RequiredSkills, []string{"swift", "teamwork"})
}

func TestYears(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{text: "5+ years", want: 5},
		{text: "3-5 years of Swift", want: 3},
		{text: "at least 2 yrs, ideally 4 years", want: 4},
		{text: "founded 120 years ago", want: 0},
		{text: "no numbers here", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, years(tt.text))
		})
	}
}

func TestSplit(t *testing.T) {
	required, preferred := split("Must have:\nSwift\nPreferred:\nFirebase\nA preferred candidate has a long and detailed portfolio of shipped apps\nRequirements\nXCTest")

	assert.Contains(t, required, "Swift")
	assert.Contains(t, required, "XCTest")
	assert.Contains(t, preferred, "Firebase")
	assert.Contains(t, preferred, "portfolio")
}
