// Package sections turns unstructured resume text into sections, dates,
// experience and education entries, contact details and metrics.
package sections

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultHeaders returns the built-in section header keywords.
func DefaultHeaders() []string {
	return []string{
		"PROFESSIONAL SUMMARY", "SUMMARY", "OBJECTIVE",
		"EXPERIENCE", "WORK EXPERIENCE", "EMPLOYMENT HISTORY",
		"EDUCATION", "ACADEMIC BACKGROUND",
		"SKILLS", "TECHNICAL SKILLS", "COMPETENCIES",
		"PROJECTS", "PORTFOLIO",
		"CERTIFICATIONS", "CERTIFICATES",
		"LANGUAGES", "LANGUAGE SKILLS",
	}
}

// Config tunes the analyzer.
type Config struct {
	// Headers are matched as case-insensitive substrings of a line.
	Headers []string `mapstructure:"headers"`
	// Now is the clock used for open-ended date ranges.
	Now func() time.Time `mapstructure:"-"`
}

// Analyzer is safe for concurrent use.
type Analyzer struct {
	headers []string
	now     func() time.Time
	logger  *zap.Logger
}

// New creates an analyzer. Zero config values fall back to defaults.
func New(cfg Config, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}

	headers := cfg.Headers
	if len(headers) == 0 {
		headers = DefaultHeaders()
	}
	upper := make([]string, 0, len(headers))
	for _, h := range headers {
		if h = strings.ToUpper(strings.TrimSpace(h)); h != "" {
			upper = append(upper, h)
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Analyzer{headers: upper, now: now, logger: logger}
}

// Analyze never fails. Text without recognizable structure yields empty
// collections.
func (a *Analyzer) Analyze(text string) Analysis {
	analysis := Empty()
	text = normalizeLines(text)
	if strings.TrimSpace(text) == "" {
		return analysis
	}

	now := a.now()

	analysis.Sections = a.segment(text)
	analysis.Dates = extractDates(text)
	analysis.Experience = extractExperience(text, now)
	analysis.Education = extractEducation(text)
	analysis.ContactInfo = extractContact(text)
	analysis.SkillsSections = extractSkillsSections(text)
	analysis.Summary = extractSummary(text)
	analysis.Projects = extractProjects(text)
	analysis.Certifications = extractList(text, certsHeader, 3)
	analysis.Languages = extractList(text, langsHeader, 2)

	for _, e := range analysis.Experience {
		analysis.ExperienceYears += e.Years
	}

	analysis.Metrics = metrics(text, analysis)

	a.logger.Debug("resume analyzed",
		zap.Int("sections", len(analysis.Sections)),
		zap.Int("dates", len(analysis.Dates)),
		zap.Int("experience", len(analysis.Experience)),
		zap.Int("education", len(analysis.Education)),
		zap.Float64("experience_years", analysis.ExperienceYears),
	)

	return analysis
}

// segment splits text into named sections. A line containing a header
// keyword opens a section named after the trimmed line. Text before the
// first header is not part of any section.
func (a *Analyzer) segment(text string) map[string]string {
	out := map[string]string{}

	var current string
	var content []string
	flush := func() {
		if current == "" {
			return
		}
		if body := strings.TrimSpace(strings.Join(content, "\n")); body != "" {
			out[current] = body
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if a.isHeader(line) {
			flush()
			current = strings.TrimSpace(line)
			content = nil
			continue
		}
		if current != "" {
			content = append(content, line)
		}
	}
	flush()

	return out
}

func (a *Analyzer) isHeader(line string) bool {
	upper := strings.ToUpper(strings.TrimSpace(line))
	if upper == "" {
		return false
	}
	for _, h := range a.headers {
		if strings.Contains(upper, h) {
			return true
		}
	}
	return false
}

func metrics(text string, a Analysis) Metrics {
	lines := strings.Split(text, "\n")
	words := len(strings.Fields(text))

	m := Metrics{
		TotalLines:         len(lines),
		WordCount:          words,
		CharCount:          len([]rune(text)),
		SectionCount:       len(a.Sections),
		DateCount:          len(a.Dates),
		ExperienceCount:    len(a.Experience),
		EducationCount:     len(a.Education),
		ProjectCount:       len(a.Projects),
		CertificationCount: len(a.Certifications),
		LanguageCount:      len(a.Languages),
	}
	if len(lines) > 0 {
		m.AvgWordsPerLine = float64(words) / float64(len(lines))
	}
	return m
}

// normalizeLines unifies line endings and strips trailing blanks so that
// whitespace-only lines separate paragraphs.
func normalizeLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.Join(lines, "\n")
}
