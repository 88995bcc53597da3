package sections

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane.doe@example.com | +1 555 123 4567 | linkedin.com/in/janedoe | github.com/janedoe

PROFESSIONAL SUMMARY
Senior iOS engineer with 6 years building consumer apps.

WORK EXPERIENCE
Company: Acme Corp
Role: Senior iOS Engineer
Jan 2020 - Present
Responsibilities:
- Built SwiftUI features
- Led migration to XCTest
Technologies: Swift, SwiftUI, Combine

Company: Beta LLC, Remote
Position: iOS Developer
Mar 2016 - Dec 2019
Responsibilities:
- Maintained UIKit apps

EDUCATION
University: State University
Degree: Bachelor of Science in Computer Science
2012 - 2016
GPA: 3.8

PROJECTS
Weather App: A SwiftUI weather client.

CERTIFICATIONS
AWS Certified Developer, Scrum Master

LANGUAGES
English, Spanish`

func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC) }
}

func newTestAnalyzer() *Analyzer {
	return New(Config{Now: fixedClock(2024)}, nil)
}

func TestAnalyzeFullResume(t *testing.T) {
	a := newTestAnalyzer().Analyze(sampleResume)

	t.Run("sections", func(t *testing.T) {
		assert.Len(t, a.Sections, 6)
		assert.Equal(t, "Senior iOS engineer with 6 years building consumer apps.", a.Sections["PROFESSIONAL SUMMARY"])
		assert.Equal(t, "English, Spanish", a.Sections["LANGUAGES"])
		assert.NotContains(t, a.Sections, "Jane Doe")
	})

	t.Run("experience", func(t *testing.T) {
		require.Len(t, a.Experience, 2)

		first := a.Experience[0]
		assert.Equal(t, "Acme Corp", first.Company)
		assert.Equal(t, "Senior iOS Engineer", first.Position)
		assert.Equal(t, "Jan 2020", first.StartDate)
		assert.Equal(t, "Present", first.EndDate)
		assert.Equal(t, "From Jan 2020 to Present", first.Duration)
		assert.InDelta(t, 4.5, first.Years, 1e-9)
		assert.Equal(t, []string{"Built SwiftUI features", "Led migration to XCTest"}, first.Responsibilities)
		assert.Equal(t, []string{"Swift", "SwiftUI", "Combine"}, first.Technologies)

		second := a.Experience[1]
		assert.Equal(t, "Beta LLC", second.Company)
		assert.Equal(t, "iOS Developer", second.Position)
		assert.InDelta(t, 3.0, second.Years, 1e-9)

		assert.InDelta(t, 7.5, a.ExperienceYears, 1e-9)
	})

	t.Run("education", func(t *testing.T) {
		require.Len(t, a.Education, 1)
		e := a.Education[0]
		assert.Equal(t, "State University", e.Institution)
		assert.Equal(t, "Bachelor of Science in Computer Science", e.Degree)
		assert.Equal(t, "Computer Science", e.Field)
		assert.Equal(t, "2012", e.StartDate)
		assert.Equal(t, "2016", e.EndDate)
		assert.Equal(t, "3.8", e.GPA)
	})

	t.Run("contact", func(t *testing.T) {
		assert.Equal(t, map[string]string{
			"email":    "jane.doe@example.com",
			"phone":    "+1 555 123 4567",
			"linkedin": "linkedin.com/in/janedoe",
			"github":   "github.com/janedoe",
		}, a.ContactInfo)
	})

	t.Run("lists", func(t *testing.T) {
		assert.Equal(t, "Senior iOS engineer with 6 years building consumer apps.", a.Summary)
		assert.Equal(t, []Project{{Name: "Weather App", Description: "A SwiftUI weather client"}}, a.Projects)
		assert.Equal(t, []string{"AWS Certified Developer", "Scrum Master"}, a.Certifications)
		assert.Equal(t, []string{"English", "Spanish"}, a.Languages)
		assert.Equal(t, []string{"Swift", "SwiftUI", "Combine"}, a.SkillsSections["TECHNICAL SKILLS"])
	})

	t.Run("metrics", func(t *testing.T) {
		assert.Equal(t, 3, a.Metrics.DateCount)
		assert.Equal(t, 2, a.Metrics.ExperienceCount)
		assert.Equal(t, 1, a.Metrics.EducationCount)
		assert.Equal(t, 6, a.Metrics.SectionCount)
		assert.Greater(t, a.Metrics.WordCount, 50)
		assert.Greater(t, a.Metrics.AvgWordsPerLine, 0.0)
	})
}

func TestExperienceMath(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		end    string
		expect float64
	}{
		{name: "open range adds half a year", start: "Jan 2020", end: "Present", expect: 4.5},
		{name: "current is open too", start: "2021", end: "current", expect: 3.5},
		{name: "closed range", start: "Mar 2016", end: "Dec 2019", expect: 3},
		{name: "unparsable start", start: "Foo", end: "Present", expect: 0},
		{name: "unparsable end", start: "2019", end: "Bar", expect: 0},
		{name: "reversed range", start: "2020", end: "2018", expect: 0},
	}

	now := fixedClock(2024)()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expect, rangeYears(tt.start, tt.end, now), 1e-9)
		})
	}
}

func TestSingleStatedRangeIsCountedOnce(t *testing.T) {
	text := "EXPERIENCE\nCompany: Acme\nJan 2020 - Present"

	a := newTestAnalyzer().Analyze(text)

	require.Len(t, a.Dates, 1)
	assert.Equal(t, DateRange{StartDate: "Jan 2020", EndDate: "Present", Match: "Jan 2020 - Present"}, a.Dates[0])
	assert.True(t, a.Dates[0].IsOpen())
	require.Len(t, a.Experience, 1)
	assert.InDelta(t, 4.5, a.ExperienceYears, 1e-9)
}

func TestDatePatterns(t *testing.T) {
	text := "01/15/2018 - 03/01/2019, January 2019 - June 2020, 2010 - 2012"

	dates := extractDates(text)

	require.Len(t, dates, 3)
	assert.Equal(t, "01/15/2018", dates[0].StartDate)
	assert.Equal(t, "2010", dates[1].StartDate)
	assert.Equal(t, "January 2019", dates[2].StartDate)
	assert.Equal(t, "June 2020", dates[2].EndDate)
}

func TestMissingFieldsUseDefaults(t *testing.T) {
	text := "EXPERIENCE\nCompany: Solo Inc\n\nEDUCATION\nCollege: City College"

	a := newTestAnalyzer().Analyze(text)

	require.Len(t, a.Experience, 1)
	assert.Equal(t, "Unknown", a.Experience[0].Position)
	assert.Empty(t, a.Experience[0].StartDate)
	assert.Zero(t, a.Experience[0].Years)
	assert.Nil(t, a.Experience[0].Fields()["start_date"])

	require.Len(t, a.Education, 1)
	assert.Equal(t, "Unknown", a.Education[0].Degree)
	assert.Equal(t, "Unknown", a.Education[0].Field)
	assert.Nil(t, a.Education[0].Fields()["gpa"])
}

func TestEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\t"} {
		a := newTestAnalyzer().Analyze(text)

		assert.NotNil(t, a.Sections)
		assert.NotNil(t, a.Dates)
		assert.NotNil(t, a.Experience)
		assert.NotNil(t, a.Education)
		assert.NotNil(t, a.ContactInfo)
		assert.Empty(t, a.Experience)
		assert.Zero(t, a.ExperienceYears)
	}
}

func TestCustomHeaders(t *testing.T) {
	a := New(Config{Headers: []string{"hobbies"}, Now: fixedClock(2024)}, nil)

	got := a.Analyze("intro\nHobbies\nchess\nEXPERIENCE\nignored header")

	assert.Equal(t, map[string]string{"Hobbies": "chess\nEXPERIENCE\nignored header"}, got.Sections)
}

func TestFieldsSerialization(t *testing.T) {
	e := Experience{
		Company:          "Acme",
		Position:         "Engineer",
		StartDate:        "2020",
		EndDate:          "2021",
		Duration:         "2020 - 2021",
		Years:            1,
		Responsibilities: []string{"shipping"},
	}

	f := e.Fields()
	assert.Equal(t, "Acme", f["company"])
	assert.Equal(t, "2020", f["start_date"])
	assert.Equal(t, []string{}, f["technologies"])
	assert.Equal(t, 1.0, f["years"])
}
