package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/ats-screener/internal/scoring"
	"github.com/spigell/ats-screener/internal/screening"
)

const (
	sheetSummary   = "Summary"
	sheetRanking   = "Ranking"
	sheetChecklist = "Checklist"
)

// ExportExcel writes a batch report as an xlsx workbook with a summary, a
// ranking by score and a per-pair checklist. Checklist columns follow rules.
// The .xlsx extension is added when missing; the final path is returned.
func ExportExcel(report screening.BatchReport, rules []scoring.Rule, outputPath string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return "", err
	}
	for _, name := range []string{sheetRanking, sheetChecklist} {
		if _, err := f.NewSheet(name); err != nil {
			return "", err
		}
	}

	styles, err := newStyles(f)
	if err != nil {
		return "", fmt.Errorf("creating styles: %w", err)
	}

	if err := summarySheet(f, styles, report); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := rankingSheet(f, styles, report); err != nil {
		return "", fmt.Errorf("failed to create ranking sheet: %w", err)
	}
	if err := checklistSheet(f, styles, report, rules); err != nil {
		return "", fmt.Errorf("failed to create checklist sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		var buf bytes.Buffer
		if writeErr := f.Write(&buf); writeErr != nil {
			return "", fmt.Errorf("failed to save Excel file: direct save failed (%v), buffer write also failed: %w", err, writeErr)
		}
		if fileErr := os.WriteFile(outputPath, buf.Bytes(), 0o644); fileErr != nil {
			return "", fmt.Errorf("failed to save Excel file: direct save failed (%v), file write failed: %w", err, fileErr)
		}
	}
	return outputPath, nil
}

type styles struct {
	header int
	label  int
	pass   int
	fail   int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return s, err
	}

	s.label, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return s, err
	}

	s.pass, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return s, err
	}

	s.fail, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return s, err
}

func summarySheet(f *excelize.File, st styles, report screening.BatchReport) error {
	if err := f.SetColWidth(sheetSummary, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetSummary, "B", "B", 40); err != nil {
		return err
	}

	rows := [][]any{
		{"Run ID", report.RunID},
		{"Generated", report.Timestamp.Format("2006-01-02 15:04:05")},
		{"Resumes", report.Summary.TotalResumes},
		{"Jobs", report.Summary.TotalJobs},
		{"Scored pairs", report.Summary.TotalMatches},
		{"Skipped pairs", report.Summary.Skipped},
		{"Average score", round1(report.Summary.AverageScore)},
		{"Shortlisted", report.Summary.Shortlisted},
	}

	if err := f.SetCellValue(sheetSummary, "A1", "ATS Screening Report"); err != nil {
		return err
	}
	if err := f.MergeCell(sheetSummary, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "B1", st.header); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetSummary, cell, cell, st.label); err != nil {
			return err
		}
	}

	row := len(rows) + 4
	for _, s := range report.Skipped {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []any{"Skipped", fmt.Sprintf("%s / %s: %s", s.Resume, s.Job, s.Reason)}
		if err := f.SetSheetRow(sheetSummary, cell, &values); err != nil {
			return err
		}
		row++
	}
	return nil
}

func rankingSheet(f *excelize.File, st styles, report screening.BatchReport) error {
	headers := []any{"Rank", "Resume", "Job", "Overall", "Experience", "Required skills", "Preferred skills", "Checklist", "Shortlisted", "Missing required"}
	if err := writeHeader(f, sheetRanking, st, headers); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetRanking, "B", "C", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetRanking, "J", "J", 40); err != nil {
		return err
	}

	for i, r := range Ranked(report.Results) {
		b := r.Match.Breakdown
		shortlisted := "No"
		if r.Shortlisted {
			shortlisted = "Yes"
		}
		values := []any{
			i + 1,
			r.Resume,
			r.Job,
			round1(r.Match.OverallScore),
			round1(b.Experience.Score),
			round1(b.Skills.RequiredScore),
			round1(b.Skills.PreferredScore),
			round1(b.SpecificScore),
			shortlisted,
			strings.Join(b.Skills.MissingRequired, ", "),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetRanking, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func checklistSheet(f *excelize.File, st styles, report screening.BatchReport, rules []scoring.Rule) error {
	headers := []any{"Resume", "Job"}
	for _, r := range rules {
		headers = append(headers, r.Title)
	}
	if err := writeHeader(f, sheetChecklist, st, headers); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetChecklist, "A", "B", 24); err != nil {
		return err
	}

	for i, res := range report.Results {
		row := i + 2
		values := []any{res.Resume, res.Job}
		for _, r := range rules {
			values = append(values, res.Match.Breakdown.SpecificRequirements[r.Name].Status.Glyph())
		}
		start, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetChecklist, start, &values); err != nil {
			return err
		}

		for j, r := range rules {
			cell, err := excelize.CoordinatesToCellName(j+3, row)
			if err != nil {
				return err
			}
			style := st.fail
			if res.Match.Breakdown.SpecificRequirements[r.Name].Status.Passed() {
				style = st.pass
			}
			if err := f.SetCellStyle(sheetChecklist, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, st styles, headers []any) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, st.header)
}

// Ranked returns results ordered by overall score, best first. Ties keep
// input order.
func Ranked(results []screening.Result) []screening.Result {
	out := make([]screening.Result, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Match.OverallScore > out[j].Match.OverallScore
	})
	return out
}
