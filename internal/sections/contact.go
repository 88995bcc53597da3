package sections

import "regexp"

var contactPatterns = []struct {
	field   string
	pattern *regexp.Regexp
}{
	{field: "email", pattern: regexp.MustCompile(`[\w.+-]+@[\w-]+(?:\.[\w-]+)*\.[a-zA-Z]{2,}`)},
	{field: "phone", pattern: regexp.MustCompile(`\+\d[\d\s-]{6,14}\d|\(?\b\d{3}\)?[\s.-]?\d{3}[.-]\d{4}\b|\b\d{10,15}\b`)},
	{field: "linkedin", pattern: regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)},
	{field: "github", pattern: regexp.MustCompile(`(?i)github\.com/[\w-]+`)},
}

func extractContact(text string) map[string]string {
	out := map[string]string{}
	for _, c := range contactPatterns {
		if m := c.pattern.FindString(text); m != "" {
			out[c.field] = m
		}
	}
	return out
}
