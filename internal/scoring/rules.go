package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spigell/ats-screener/internal/extraction"
	"github.com/spigell/ats-screener/internal/ontology"
	"github.com/spigell/ats-screener/internal/sections"
)

var validate = validator.New()

// RuleKind selects how a checklist rule is evaluated.
type RuleKind string

const (
	// KindSkills passes when any listed skill was extracted.
	KindSkills RuleKind = "skills"
	// KindEducation passes when the resume has at least one education entry.
	KindEducation RuleKind = "education"
)

// Pool selects which extracted skill set a skills rule looks at.
type Pool string

const (
	PoolTechnical Pool = "technical"
	PoolSoft      Pool = "soft"
	PoolAny       Pool = "any"
)

// Rule is one binary checklist requirement.
type Rule struct {
	Name           string   `mapstructure:"name" json:"name" validate:"required"`
	Title          string   `mapstructure:"title" json:"title"`
	Kind           RuleKind `mapstructure:"kind" json:"kind" validate:"required,oneof=skills education"`
	Pool           Pool     `mapstructure:"pool" json:"pool" validate:"omitempty,oneof=technical soft any"`
	Skills         []string `mapstructure:"skills" json:"skills" validate:"dive,required"`
	Pass           string   `mapstructure:"pass" json:"pass"`
	Fail           string   `mapstructure:"fail" json:"fail"`
	Recommendation string   `mapstructure:"recommendation" json:"recommendation,omitempty"`
}

// ErrEmptyRuleTable is returned for a checklist without rules.
var ErrEmptyRuleTable = errors.New("rule table is empty")

// RuleTable is a validated, ordered checklist. It is immutable.
type RuleTable struct {
	rules []Rule
}

// NewRuleTable validates rules and fills in titles and details that were
// left empty.
func NewRuleTable(rules []Rule) (*RuleTable, error) {
	if len(rules) == 0 {
		return nil, ErrEmptyRuleTable
	}

	seen := make(map[string]struct{}, len(rules))
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("invalid rule %q: %w", r.Name, err)
		}

		r.Name = strings.TrimSpace(r.Name)
		if _, ok := seen[r.Name]; ok {
			return nil, fmt.Errorf("duplicate rule %q", r.Name)
		}
		seen[r.Name] = struct{}{}

		if r.Kind == KindSkills && len(r.Skills) == 0 {
			return nil, fmt.Errorf("rule %q lists no skills", r.Name)
		}
		if r.Pool == "" {
			r.Pool = PoolTechnical
		}

		skills := make([]string, 0, len(r.Skills))
		for _, s := range r.Skills {
			skills = append(skills, ontology.Normalize(s))
		}
		r.Skills = skills

		if r.Title == "" {
			r.Title = Title(r.Name)
		}
		if r.Pass == "" {
			r.Pass = r.Title + " requirement met"
		}
		if r.Fail == "" {
			r.Fail = r.Title + " not found"
		}
		out = append(out, r)
	}

	return &RuleTable{rules: out}, nil
}

// Rules returns a copy of the rules in evaluation order.
func (t *RuleTable) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of rules.
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Unknown returns the rule skills the ontology does not define. Such skills
// can never be extracted, so callers usually warn about them.
func (t *RuleTable) Unknown(o *ontology.Ontology) []string {
	var out []string
	for _, r := range t.rules {
		for _, s := range r.Skills {
			if !o.Has(s) {
				out = append(out, r.Name+": "+s)
			}
		}
	}
	return out
}

// Evaluate runs every rule against the extracted skills and analysis.
func (t *RuleTable) Evaluate(skills extraction.ExtractedSkills, analysis sections.Analysis) map[string]CheckResult {
	out := make(map[string]CheckResult, len(t.rules))
	for _, r := range t.rules {
		status := StatusFail
		if r.passes(skills, analysis) {
			status = StatusPass
		}
		details := r.Fail
		if status == StatusPass {
			details = r.Pass
		}
		out[r.Name] = CheckResult{Status: status, Details: details}
	}
	return out
}

func (r Rule) passes(skills extraction.ExtractedSkills, analysis sections.Analysis) bool {
	switch r.Kind {
	case KindEducation:
		return len(analysis.Education) > 0
	case KindSkills:
		for _, s := range r.Skills {
			switch r.Pool {
			case PoolSoft:
				if skills.HasSoft(s) {
					return true
				}
			case PoolAny:
				if skills.Has(s) {
					return true
				}
			default:
				if skills.HasTechnical(s) {
					return true
				}
			}
		}
	}
	return false
}

// DecodeRules decodes raw config values (as produced by viper) into rules.
func DecodeRules(raw any) ([]Rule, error) {
	if raw == nil {
		return nil, nil
	}

	var rules []Rule
	if err := mapstructure.Decode(raw, &rules); err != nil {
		return nil, fmt.Errorf("decoding checklist: %w", err)
	}
	return rules, nil
}

var titleCaser = cases.Title(language.English)

// Title turns a snake_case name into a title, "app_store" -> "App Store".
func Title(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

// DefaultRules returns the mobile-engineering checklist.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:   "ios_development",
			Title:  "iOS Development",
			Kind:   KindSkills,
			Pool:   PoolTechnical,
			Skills: []string{"swift", "swiftui", "uikit", "cocoa touch", "ios"},
			Pass:   "Strong iOS skills found",
			Fail:   "iOS skills not prominent",
		},
		{
			Name:   "swift_experience",
			Kind:   KindSkills,
			Pool:   PoolTechnical,
			Skills: []string{"swift", "swiftui"},
			Pass:   "Swift/SwiftUI experience confirmed",
			Fail:   "Swift experience not found",
		},
		{
			Name:           "team_collaboration",
			Kind:           KindSkills,
			Pool:           PoolSoft,
			Skills:         []string{"agile", "scrum", "collaboration", "teamwork"},
			Pass:           "Team collaboration skills present",
			Fail:           "Team skills not mentioned",
			Recommendation: "Emphasize team collaboration and Agile methodology experience",
		},
		{
			Name:           "accessibility",
			Kind:           KindSkills,
			Pool:           PoolTechnical,
			Skills:         []string{"accessibility", "voiceover", "wcag", "dynamic type"},
			Pass:           "Accessibility experience found",
			Fail:           "Accessibility not mentioned",
			Recommendation: "Include accessibility experience (VoiceOver, WCAG compliance, Dynamic Type)",
		},
		{
			Name:           "testing",
			Kind:           KindSkills,
			Pool:           PoolTechnical,
			Skills:         []string{"xctest", "xcuitest", "unit testing", "ui testing", "automated testing", "tdd"},
			Pass:           "Testing experience confirmed",
			Fail:           "Testing experience not found",
			Recommendation: "Highlight testing experience (XCTest, XCUITest, TDD, automated testing)",
		},
		{
			Name:           "cicd",
			Title:          "CI/CD",
			Kind:           KindSkills,
			Pool:           PoolTechnical,
			Skills:         []string{"jenkins", "fastlane", "github actions", "ci/cd", "bitrise"},
			Pass:           "CI/CD experience present",
			Fail:           "CI/CD not mentioned",
			Recommendation: "Add CI/CD experience (Jenkins, Fastlane, GitHub Actions, automated deployment)",
		},
		{
			Name:   "authentication",
			Kind:   KindSkills,
			Pool:   PoolTechnical,
			Skills: []string{"oauth", "jwt", "face id", "touch id"},
			Pass:   "Authentication experience found",
			Fail:   "Auth experience not found",
		},
		{
			Name:   "app_store",
			Kind:   KindSkills,
			Pool:   PoolTechnical,
			Skills: []string{"app store connect", "testflight"},
			Pass:   "App Store experience confirmed",
			Fail:   "App Store experience not found",
		},
		{
			Name: "education",
			Kind: KindEducation,
			Pass: "Education requirements met",
			Fail: "Education requirements not met",
		},
	}
}
