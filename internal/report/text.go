package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spigell/ats-screener/internal/extraction"
	"github.com/spigell/ats-screener/internal/scoring"
	"github.com/spigell/ats-screener/internal/screening"
)

// Text renders a single result as the human-readable CLI report.
func Text(w io.Writer, res scoring.MatchResult, skills extraction.ExtractedSkills) error {
	var sb strings.Builder
	b := res.Breakdown

	fmt.Fprintf(&sb, "ATS score: %.1f/100\n\n", res.OverallScore)

	sb.WriteString("Breakdown\n")
	fmt.Fprintf(&sb, "  Experience:       %.1f (%s years of %d required, %s)\n",
		b.Experience.Score, formatFloat(b.Experience.TotalYears), b.Experience.RequiredYears, b.Experience.Status)
	fmt.Fprintf(&sb, "  Required skills:  %.1f (%d/%d)\n", b.Skills.RequiredScore, b.Skills.RequiredMatches, b.Skills.TotalRequired)
	fmt.Fprintf(&sb, "  Preferred skills: %.1f (%d/%d)\n", b.Skills.PreferredScore, b.Skills.PreferredMatches, b.Skills.TotalPreferred)
	fmt.Fprintf(&sb, "  Checklist:        %.1f\n\n", b.SpecificScore)

	fmt.Fprintf(&sb, "Technical skills (%d): %s\n", len(skills.Technical), joinOrNone(skills.Technical))
	fmt.Fprintf(&sb, "Soft skills (%d): %s\n\n", len(skills.Soft), joinOrNone(skills.Soft))

	writeList(&sb, "Highlights", res.Highlights)
	writeList(&sb, "Gaps", res.Gaps)
	writeList(&sb, "Recommendations", res.Recommendations)

	sb.WriteString("Detailed matches\n")
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for _, m := range res.DetailedMatches {
		fmt.Fprintf(tw, "  %s\t%s\t%.0f%%\t%s\n", m.Requirement, m.Matched, m.Confidence*100, m.Explanation)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// BatchText renders the batch summary and the ranking.
func BatchText(w io.Writer, report screening.BatchReport) error {
	var sb strings.Builder
	s := report.Summary

	fmt.Fprintf(&sb, "Run %s at %s\n", report.RunID, report.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Resumes: %d, jobs: %d, scored: %d, skipped: %d\n", s.TotalResumes, s.TotalJobs, s.TotalMatches, s.Skipped)
	fmt.Fprintf(&sb, "Average score: %.1f, shortlisted: %d\n\n", s.AverageScore, s.Shortlisted)

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tRESUME\tJOB\tSCORE\tSHORTLISTED")
	for i, r := range Ranked(report.Results) {
		mark := ""
		if r.Shortlisted {
			mark = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%s\n", i+1, r.Resume, r.Job, r.Match.OverallScore, mark)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Skipped) > 0 {
		sb.WriteString("\nSkipped\n")
		for _, sk := range report.Skipped {
			fmt.Fprintf(&sb, "  - %s / %s: %s\n", sk.Resume, sk.Job, sk.Reason)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Rules renders the active checklist and weights.
func Rules(w io.Writer, weights scoring.Weights, rules []scoring.Rule) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Weights: experience %.2f, skills %.2f (required %.2f / preferred %.2f), checklist %.2f\n\n",
		weights.Experience, weights.Skills, weights.Required, weights.Preferred, weights.Specific)

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTITLE\tKIND\tPOOL\tSKILLS")
	for _, r := range rules {
		skills := append([]string(nil), r.Skills...)
		sort.Strings(skills)
		pool := string(r.Pool)
		if r.Kind != scoring.KindSkills {
			pool = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Title, r.Kind, pool, joinOrNone(skills))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Strategies renders the extraction strategy status.
func Strategies(w io.Writer, statuses []extraction.Status) error {
	var sb strings.Builder

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tENABLED\tDETAILS")
	for _, s := range statuses {
		keys := make([]string, 0, len(s.Details))
		for k := range s.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		details := make([]string, 0, len(keys)+1)
		for _, k := range keys {
			details = append(details, k+"="+s.Details[k])
		}
		if s.Reason != "" {
			details = append(details, "reason="+s.Reason)
		}
		fmt.Fprintf(tw, "%s\t%t\t%s\n", s.Name, s.Enabled, strings.Join(details, " "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title + "\n")
	for _, item := range items {
		sb.WriteString("  - " + item + "\n")
	}
	sb.WriteString("\n")
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", round1(v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
