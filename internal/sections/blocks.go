package sections

import (
	"regexp"
	"strings"
	"time"
)

var (
	experienceHeader = regexp.MustCompile(`(?i)work experience|professional experience|employment history|experience`)
	educationHeader  = regexp.MustCompile(`(?i)education|academic background`)

	companyLabel  = regexp.MustCompile(`(?i)(?:client|company|employer):\s*([^,\n]+)`)
	positionLabel = regexp.MustCompile(`(?i)(?:role|position|title):\s*([^,\n]+)`)
	entryStart    = regexp.MustCompile(`(?i)^\s*(?:client|company|employer):`)
	dutiesLabel   = regexp.MustCompile(`(?i)(?:responsibilities|duties|key achievements):`)
	techLabel     = regexp.MustCompile(`(?i)(?:technologies|tools|frameworks|environments):([^\n]*)`)
	labelLine     = regexp.MustCompile(`(?i)^\s*(?:technologies|tools|frameworks|environments|client|company|employer|role|position|title):`)

	institutionLabel = regexp.MustCompile(`(?i)(?:university|college|school|institute):\s*([^,\n]+)`)
	degreeLabel      = regexp.MustCompile(`(?i)(?:degree|bachelor|master|phd):\s*([^,\n]+)`)
	fieldIn          = regexp.MustCompile(`(?i)\bin\s+([^,\n]+)`)
	fieldOf          = regexp.MustCompile(`(?i)\bof\s+([^,\n]+)`)
	gpaLabel         = regexp.MustCompile(`(?i)(?:gpa|grade):\s*([\d.]+)`)

	summaryHeader  = regexp.MustCompile(`(?im)^\s*(?:professional summary|summary|objective)\b`)
	projectsHeader = regexp.MustCompile(`(?im)^\s*(?:projects|portfolio)\b`)
	certsHeader    = regexp.MustCompile(`(?im)^\s*(?:certifications|certificates)\b`)
	langsHeader    = regexp.MustCompile(`(?im)^\s*(?:language skills|languages)\b`)
	projectLine    = regexp.MustCompile(`(?m)^\s*([^:\n]+):\s*([^.\n]+)`)
	listSplit      = regexp.MustCompile(`[,\n]`)
	bulletPrefix   = regexp.MustCompile(`^[-•*·]+\s*`)
)

var skillsHeaders = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{name: "TECHNICAL SKILLS", pattern: regexp.MustCompile(`(?i)technical skills|technologies`)},
	{name: "PROGRAMMING LANGUAGES", pattern: regexp.MustCompile(`(?i)programming languages`)},
	{name: "FRAMEWORKS", pattern: regexp.MustCompile(`(?i)frameworks|libraries`)},
	{name: "TOOLS", pattern: regexp.MustCompile(`(?i)tools|platforms`)},
}

// block is a header occurrence and the text that follows it up to the next
// blank line. body excludes the header itself.
type block struct {
	start int
	end   int
	text  string
	body  string
}

func headedBlocks(text string, header *regexp.Regexp) []block {
	var blocks []block
	for pos := 0; pos < len(text); {
		loc := header.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, headerEnd := pos+loc[0], pos+loc[1]
		end := paragraphEnd(text, headerEnd)
		blocks = append(blocks, block{
			start: start,
			end:   end,
			text:  text[start:end],
			body:  text[headerEnd:end],
		})
		if end <= pos {
			break
		}
		pos = end
	}
	return blocks
}

func paragraphEnd(text string, from int) int {
	if idx := strings.Index(text[from:], "\n\n"); idx >= 0 {
		return from + idx
	}
	return len(text)
}

// followingEntries returns the paragraphs right after end that open with a
// company label, and the offset where the last of them ends.
func followingEntries(text string, end int) ([]string, int) {
	var entries []string
	for end < len(text) {
		start := end
		for start < len(text) && text[start] == '\n' {
			start++
		}
		if start >= len(text) || !entryStart.MatchString(text[start:]) {
			break
		}
		end = paragraphEnd(text, start)
		entries = append(entries, text[start:end])
	}
	return entries, end
}

func extractExperience(text string, now time.Time) []Experience {
	out := []Experience{}
	for pos := 0; pos < len(text); {
		loc := experienceHeader.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		end := paragraphEnd(text, pos+loc[1])

		more, next := followingEntries(text, end)
		for _, c := range append([]string{text[start:end]}, more...) {
			if e, ok := parseExperience(c, now); ok {
				out = append(out, e)
			}
		}
		pos = next
	}
	return out
}

func parseExperience(entry string, now time.Time) (Experience, bool) {
	company := firstGroup(companyLabel, entry)
	if company == "" {
		return Experience{}, false
	}

	e := Experience{
		Company:          company,
		Position:         firstGroup(positionLabel, entry),
		Responsibilities: duties(entry),
		Technologies:     technologies(entry),
	}
	if e.Position == "" {
		e.Position = "Unknown"
	}

	if dates := extractDates(entry); len(dates) > 0 {
		e.StartDate = dates[0].StartDate
		e.EndDate = dates[0].EndDate
		e.Duration = describeDuration(e.StartDate, e.EndDate)
		e.Years = rangeYears(e.StartDate, e.EndDate, now)
	}
	return e, true
}

func duties(entry string) []string {
	out := []string{}
	loc := dutiesLabel.FindStringIndex(entry)
	if loc == nil {
		return out
	}
	for _, line := range strings.Split(entry[loc[1]:], "\n") {
		if labelLine.MatchString(line) {
			break
		}
		line = bulletPrefix.ReplaceAllString(strings.TrimSpace(line), "")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func technologies(entry string) []string {
	out := []string{}
	m := techLabel.FindStringSubmatch(entry)
	if m == nil {
		return out
	}
	for _, t := range strings.Split(m[1], ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func extractEducation(text string) []Education {
	out := []Education{}
	for _, b := range headedBlocks(text, educationHeader) {
		institution := firstGroup(institutionLabel, b.text)
		if institution == "" {
			continue
		}

		e := Education{
			Institution: institution,
			Degree:      firstGroup(degreeLabel, b.text),
			GPA:         firstGroup(gpaLabel, b.text),
		}
		if e.Degree == "" {
			e.Degree = "Unknown"
		}
		e.Field = firstGroup(fieldIn, e.Degree)
		if e.Field == "" {
			e.Field = firstGroup(fieldOf, e.Degree)
		}
		if e.Field == "" {
			e.Field = "Unknown"
		}
		if dates := extractDates(b.text); len(dates) > 0 {
			e.StartDate = dates[0].StartDate
			e.EndDate = dates[0].EndDate
		}
		out = append(out, e)
	}
	return out
}

func extractSkillsSections(text string) map[string][]string {
	out := map[string][]string{}
	for _, h := range skillsHeaders {
		for _, b := range headedBlocks(text, h.pattern) {
			var skills []string
			for _, line := range strings.Split(b.body, "\n") {
				if idx := strings.Index(line, ":"); idx >= 0 {
					line = line[idx+1:]
				}
				for _, s := range strings.Split(line, ",") {
					s = bulletPrefix.ReplaceAllString(strings.TrimSpace(s), "")
					if len(s) > 1 {
						skills = append(skills, s)
					}
				}
			}
			if len(skills) > 0 {
				out[h.name] = append(out[h.name], skills...)
			}
		}
	}
	return out
}

func extractSummary(text string) string {
	blocks := headedBlocks(text, summaryHeader)
	if len(blocks) == 0 {
		return ""
	}
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(blocks[0].body), ":"))
}

func extractProjects(text string) []Project {
	out := []Project{}
	for _, b := range headedBlocks(text, projectsHeader) {
		for _, m := range projectLine.FindAllStringSubmatch(b.body, -1) {
			name := bulletPrefix.ReplaceAllString(strings.TrimSpace(m[1]), "")
			if name == "" {
				continue
			}
			out = append(out, Project{Name: name, Description: strings.TrimSpace(m[2])})
		}
	}
	return out
}

func extractList(text string, header *regexp.Regexp, minLen int) []string {
	out := []string{}
	for _, b := range headedBlocks(text, header) {
		body := strings.TrimLeft(strings.TrimSpace(b.body), ":")
		for _, item := range listSplit.Split(body, -1) {
			item = bulletPrefix.ReplaceAllString(strings.TrimSpace(item), "")
			if len(item) > minLen {
				out = append(out, item)
			}
		}
	}
	return out
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
