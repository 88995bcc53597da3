// Package textutil holds the text normalization and tokenization shared by
// the analyzer and the skill matcher.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	sentenceEnd = regexp.MustCompile(`[.!?]+(?:\s+|$)|\n+`)
	nonWord     = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
)

// Clean applies NFKC normalization, lowercases and collapses whitespace.
func Clean(text string) string {
	text = norm.NFKC.String(text)
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// CleanLines is like Clean but keeps line structure.
func CleanLines(text string) string {
	text = norm.NFKC.String(text)
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(strings.ToLower(line)), " ")
	}
	return strings.Join(lines, "\n")
}

// Sentences splits text on terminal punctuation followed by whitespace and
// on line breaks. Decimal points ("swift 5.7") do not split.
func Sentences(text string) []string {
	var out []string
	for _, s := range sentenceEnd.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Words splits text on whitespace.
func Words(text string) []string {
	return strings.Fields(text)
}

// CleanWord lowercases w and strips every non-word rune.
func CleanWord(w string) string {
	return nonWord.ReplaceAllString(strings.ToLower(w), "")
}

// ContainsPhrase reports whether phrase occurs in text with word boundaries
// on both sides. Both arguments are expected to be cleaned.
func ContainsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	for start := 0; start <= len(text)-len(phrase); {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(phrase)
		if boundaryBefore(text, idx) && boundaryAfter(text, end) {
			return true
		}
		start = idx + 1
	}
	return false
}

// Contains is a substring test that falls back to ContainsPhrase for
// phrases of at most shortLen bytes.
func Contains(text, phrase string, shortLen int) bool {
	if len(phrase) <= shortLen {
		return ContainsPhrase(text, phrase)
	}
	return phrase != "" && strings.Contains(text, phrase)
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	r := rune(text[idx-1])
	return !isWordRune(r)
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r := rune(text[end])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || r >= 0x80
}
