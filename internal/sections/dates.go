package sections

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Ordered from most to least specific. A later pattern never reports a
// range overlapping one an earlier pattern already produced.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\b[a-z]{3}\s+\d{4})\s*[-–]\s*([a-z]{3}\s+\d{4}|\bpresent\b|\bcurrent\b)`),
	regexp.MustCompile(`(?i)(\b\d{1,2}/\d{1,2}/\d{4})\s*[-–]\s*(\d{1,2}/\d{1,2}/\d{4}|\bpresent\b|\bcurrent\b)`),
	regexp.MustCompile(`(?i)(\b\d{4})\s*[-–]\s*(\d{4}\b|\bpresent\b|\bcurrent\b)`),
	regexp.MustCompile(`(?i)(\b[a-z]+\s+\d{4})\s*[-–]\s*([a-z]+\s+\d{4}|\bpresent\b|\bcurrent\b)`),
}

var yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

type span struct{ start, end int }

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

func extractDates(text string) []DateRange {
	dates := []DateRange{}
	var taken []span

	for _, pattern := range datePatterns {
		for _, m := range pattern.FindAllStringSubmatchIndex(text, -1) {
			s := span{start: m[0], end: m[1]}
			if overlapsAny(s, taken) {
				continue
			}
			taken = append(taken, s)
			dates = append(dates, DateRange{
				StartDate: strings.TrimSpace(text[m[2]:m[3]]),
				EndDate:   strings.TrimSpace(text[m[4]:m[5]]),
				Match:     text[m[0]:m[1]],
			})
		}
	}
	return dates
}

func overlapsAny(s span, spans []span) bool {
	for _, t := range spans {
		if s.overlaps(t) {
			return true
		}
	}
	return false
}

// IsOpen reports whether the range runs to the present.
func (d DateRange) IsOpen() bool {
	return isOpenEnded(d.EndDate)
}

func isOpenEnded(end string) bool {
	end = strings.ToLower(end)
	return strings.Contains(end, "present") || strings.Contains(end, "current")
}

// rangeYears returns the length of a range in years. Open ranges count up
// to now plus half a year. Unparsable years yield 0.
func rangeYears(start, end string, now time.Time) float64 {
	startYear, ok := firstYear(start)
	if !ok {
		return 0
	}

	var years float64
	if isOpenEnded(end) {
		years = float64(now.Year()-startYear) + 0.5
	} else {
		endYear, ok := firstYear(end)
		if !ok {
			return 0
		}
		years = float64(endYear - startYear)
	}

	if years < 0 {
		return 0
	}
	return years
}

func firstYear(s string) (int, bool) {
	y := yearPattern.FindString(s)
	if y == "" {
		return 0, false
	}
	n, err := strconv.Atoi(y)
	if err != nil {
		return 0, false
	}
	return n, true
}

func describeDuration(start, end string) string {
	if start == "" || end == "" {
		return ""
	}
	if isOpenEnded(end) {
		return fmt.Sprintf("From %s to Present", start)
	}
	return fmt.Sprintf("%s - %s", start, end)
}
