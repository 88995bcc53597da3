// Package similarity provides string-similarity scorers on a 0-100 scale and
// a top-N extraction that keeps the best score any scorer gives a choice.
package similarity

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Scorer rates the similarity of two strings from 0 (unrelated) to 100 (equal).
type Scorer func(a, b string) float64

// Candidate is a choice scored against a query.
type Candidate struct {
	Choice string
	Score  float64
}

// Ratio is the normalized Levenshtein similarity of the whole strings.
func Ratio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(d)/float64(longest))
}

// PartialRatio is the best Ratio of the shorter string against every
// equally long window of the longer one.
func PartialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}

	s := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		score := Ratio(s, string(long[i:i+len(short)]))
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}

// TokenSortRatio compares the strings after sorting their whitespace tokens.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

// Default returns the character-ratio, partial-ratio and token-sort-ratio scorers.
func Default() []Scorer {
	return []Scorer{Ratio, PartialRatio, TokenSortRatio}
}

// Extract keeps the best limit choices for every scorer and merges them,
// keeping the highest score per choice. Results are ordered by score
// descending, then by choice. A non-positive limit keeps every choice.
func Extract(query string, choices []string, limit int, scorers ...Scorer) []Candidate {
	merged := make(map[string]float64)
	for _, score := range scorers {
		ranked := make([]Candidate, 0, len(choices))
		for _, choice := range choices {
			ranked = append(ranked, Candidate{Choice: choice, Score: score(query, choice)})
		}
		sortCandidates(ranked)
		if limit > 0 && len(ranked) > limit {
			ranked = ranked[:limit]
		}
		for _, c := range ranked {
			if prev, ok := merged[c.Choice]; !ok || c.Score > prev {
				merged[c.Choice] = c.Score
			}
		}
	}

	out := make([]Candidate, 0, len(merged))
	for choice, score := range merged {
		out = append(out, Candidate{Choice: choice, Score: score})
	}
	sortCandidates(out)
	return out
}

func sortCandidates(c []Candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].Score != c[j].Score {
			return c[i].Score > c[j].Score
		}
		return c[i].Choice < c[j].Choice
	})
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
