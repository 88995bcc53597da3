package sections

import (
	"fmt"
	"strconv"
)

// DateRange is a start/end pair found in the text. EndDate may hold the
// sentinel "Present" or "Current".
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Match     string `json:"full_match"`
}

// Fields returns the range as a flat map.
func (d DateRange) Fields() map[string]string {
	return map[string]string{
		"start_date": d.StartDate,
		"end_date":   d.EndDate,
		"full_match": d.Match,
	}
}

// Experience is one work history entry.
type Experience struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	Duration         string   `json:"duration,omitempty"`
	Years            float64  `json:"years"`
	Responsibilities []string `json:"responsibilities"`
	Technologies     []string `json:"technologies"`
}

// Fields returns the entry as a flat map. Missing dates are nil.
func (e Experience) Fields() map[string]any {
	return map[string]any{
		"company":          e.Company,
		"position":         e.Position,
		"start_date":       optional(e.StartDate),
		"end_date":         optional(e.EndDate),
		"duration":         optional(e.Duration),
		"years":            e.Years,
		"responsibilities": append([]string{}, e.Responsibilities...),
		"technologies":     append([]string{}, e.Technologies...),
	}
}

// Education is one education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// Fields returns the entry as a flat map. Missing dates and GPA are nil.
func (e Education) Fields() map[string]any {
	return map[string]any{
		"institution": e.Institution,
		"degree":      e.Degree,
		"field":       e.Field,
		"start_date":  optional(e.StartDate),
		"end_date":    optional(e.EndDate),
		"gpa":         optional(e.GPA),
	}
}

// Project is a named project with a one-line description.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Metrics are simple counts over the text and the extracted structure.
type Metrics struct {
	TotalLines         int     `json:"total_lines"`
	WordCount          int     `json:"word_count"`
	CharCount          int     `json:"char_count"`
	AvgWordsPerLine    float64 `json:"average_words_per_line"`
	SectionCount       int     `json:"section_count"`
	DateCount          int     `json:"date_count"`
	ExperienceCount    int     `json:"experience_count"`
	EducationCount     int     `json:"education_count"`
	ProjectCount       int     `json:"project_count"`
	CertificationCount int     `json:"certification_count"`
	LanguageCount      int     `json:"language_count"`
}

// Fields returns the metrics as label/value strings in a stable order.
func (m Metrics) Fields() [][2]string {
	return [][2]string{
		{"total_lines", strconv.Itoa(m.TotalLines)},
		{"word_count", strconv.Itoa(m.WordCount)},
		{"char_count", strconv.Itoa(m.CharCount)},
		{"average_words_per_line", fmt.Sprintf("%.2f", m.AvgWordsPerLine)},
		{"section_count", strconv.Itoa(m.SectionCount)},
		{"date_count", strconv.Itoa(m.DateCount)},
		{"experience_count", strconv.Itoa(m.ExperienceCount)},
		{"education_count", strconv.Itoa(m.EducationCount)},
		{"project_count", strconv.Itoa(m.ProjectCount)},
		{"certification_count", strconv.Itoa(m.CertificationCount)},
		{"language_count", strconv.Itoa(m.LanguageCount)},
	}
}

// Analysis is the structured view of a resume. Collections are never nil.
type Analysis struct {
	Sections        map[string]string   `json:"sections"`
	Dates           []DateRange         `json:"dates"`
	Experience      []Experience        `json:"experience"`
	Education       []Education         `json:"education"`
	ContactInfo     map[string]string   `json:"contact_info"`
	SkillsSections  map[string][]string `json:"skills_sections"`
	Summary         string              `json:"summary"`
	Projects        []Project           `json:"projects"`
	Certifications  []string            `json:"certifications"`
	Languages       []string            `json:"languages"`
	Metrics         Metrics             `json:"metrics"`
	ExperienceYears float64             `json:"experience_years"`
}

// Empty returns an analysis with every collection initialized.
func Empty() Analysis {
	return Analysis{
		Sections:       map[string]string{},
		Dates:          []DateRange{},
		Experience:     []Experience{},
		Education:      []Education{},
		ContactInfo:    map[string]string{},
		SkillsSections: map[string][]string{},
		Projects:       []Project{},
		Certifications: []string{},
		Languages:      []string{},
	}
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
