package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/ats-screener/internal/similarity"
	"github.com/spigell/ats-screener/internal/textutil"
)

var (
	phrasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(\w+(?:\s+\w+)*)\s+and\s+(\w+(?:\s+\w+)*)\b`),
		regexp.MustCompile(`\b(\w+(?:\s+\w+)*)\s*,\s*(\w+(?:\s+\w+)*)\s*,\s*(\w+(?:\s+\w+)*)\b`),
		regexp.MustCompile(`\b(\w+(?:\s+\w+)*)\s+or\s+(\w+(?:\s+\w+)*)\b`),
	}

	// Most specific first, a mention yields one version only.
	versionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b([a-z][\w+#]*)\s+v?(\d+\.\d+\.\d+)\b`),
		regexp.MustCompile(`\b([a-z][\w+#]*)\s+v?(\d+\.\d+)\b`),
		regexp.MustCompile(`\b([a-z][\w+#]*)\s+v?(\d+)\b`),
	}
)

// FuzzyConfig tunes the fuzzy strategy.
type FuzzyConfig struct {
	WordThreshold   float64
	PhraseThreshold float64
	MinWordLength   int
	CandidateLimit  int
	ShortVariation  int
	Scorers         []similarity.Scorer
}

type fuzzyStrategy struct {
	toggle
	cfg FuzzyConfig
}

// NewFuzzy creates the strategy that scores words and list phrases against
// every variation, and recognizes version-qualified mentions.
func NewFuzzy(cfg FuzzyConfig) Strategy {
	if len(cfg.Scorers) == 0 {
		cfg.Scorers = similarity.Default()
	}
	return &fuzzyStrategy{cfg: cfg}
}

func (s *fuzzyStrategy) Name() string { return StrategyFuzzy }

func (s *fuzzyStrategy) Extract(doc *Document, deps Deps) []SkillMatch {
	variations := deps.Ontology.Variations()
	choices := make([]string, 0, len(variations))
	var single []string
	seen := make(map[string]struct{}, len(variations))
	for _, v := range variations {
		if _, ok := seen[v.Text]; ok {
			continue
		}
		seen[v.Text] = struct{}{}
		choices = append(choices, v.Text)
		if !strings.Contains(v.Text, " ") && len(v.Text) > s.cfg.ShortVariation {
			single = append(single, v.Text)
		}
	}

	// Words are scored against single-word variations only. Multi-word
	// variations are left to the phrase pass, short ones to the exact pass.
	var matches []SkillMatch
	matches = append(matches, s.words(doc, deps, single)...)
	matches = append(matches, s.phrases(doc, deps, choices)...)
	matches = append(matches, versioned(doc, deps)...)
	return matches
}

func (s *fuzzyStrategy) words(doc *Document, deps Deps, choices []string) []SkillMatch {
	var matches []SkillMatch
	cache := make(map[string][]similarity.Candidate)

	for _, raw := range doc.Words {
		word := textutil.CleanWord(raw)
		if len([]rune(word)) < s.cfg.MinWordLength {
			continue
		}

		candidates, ok := cache[word]
		if !ok {
			candidates = similarity.Extract(word, choices, s.cfg.CandidateLimit, s.cfg.Scorers...)
			cache[word] = candidates
		}

		for _, c := range candidates {
			if c.Score < s.cfg.WordThreshold {
				continue
			}
			if def, ok := deps.Ontology.Lookup(c.Choice); ok {
				matches = append(matches, SkillMatch{
					SkillID:     def.ID,
					Confidence:  c.Score / 100,
					MatchedText: raw,
					Strategy:    StrategyFuzzy,
				})
			}
		}
	}
	return matches
}

func (s *fuzzyStrategy) phrases(doc *Document, deps Deps, choices []string) []SkillMatch {
	var matches []SkillMatch
	for _, phrase := range listPhrases(doc.Sentences) {
		if len(strings.Fields(phrase)) < 2 {
			continue
		}
		for _, c := range similarity.Extract(phrase, choices, s.cfg.CandidateLimit, similarity.PartialRatio) {
			if c.Score < s.cfg.PhraseThreshold {
				continue
			}
			if def, ok := deps.Ontology.Lookup(c.Choice); ok {
				matches = append(matches, SkillMatch{
					SkillID:     def.ID,
					Confidence:  c.Score / 100,
					MatchedText: phrase,
					Strategy:    StrategyFuzzy,
				})
			}
		}
	}
	return matches
}

// listPhrases pulls the members of "X and Y", "X, Y, Z" and "X or Y"
// constructs out of each sentence.
func listPhrases(sentences []string) []string {
	var out []string
	for _, sentence := range sentences {
		for _, p := range phrasePatterns {
			for _, m := range p.FindAllStringSubmatch(sentence, -1) {
				for _, g := range m[1:] {
					if g = strings.TrimSpace(g); g != "" {
						out = append(out, g)
					}
				}
			}
		}
	}
	return out
}

// versioned recognizes "<name> <version>" mentions of known skills, such as
// "swift 5.7" or "xcode 14".
func versioned(doc *Document, deps Deps) []SkillMatch {
	var matches []SkillMatch
	var taken []struct{ start, end int }

	for _, p := range versionPatterns {
		for _, m := range p.FindAllStringSubmatchIndex(doc.Clean, -1) {
			overlap := false
			for _, t := range taken {
				if m[0] < t.end && t.start < m[1] {
					overlap = true
					break
				}
			}
			if overlap {
				continue
			}

			name, version := doc.Clean[m[2]:m[3]], doc.Clean[m[4]:m[5]]
			def, ok := deps.Ontology.Lookup(name)
			if !ok {
				continue
			}
			taken = append(taken, struct{ start, end int }{m[0], m[1]})
			matches = append(matches, SkillMatch{
				SkillID:     def.ID,
				Confidence:  0.95,
				MatchedText: fmt.Sprintf("%s %s", name, version),
				Strategy:    StrategyFuzzy,
				Version:     version,
			})
		}
	}
	return matches
}

func (s *fuzzyStrategy) Status() Status {
	return Status{Name: s.Name(), Enabled: s.IsEnabled(), Reason: s.reason, Details: map[string]string{
		"word_threshold":   strconv.FormatFloat(s.cfg.WordThreshold, 'f', 0, 64),
		"phrase_threshold": strconv.FormatFloat(s.cfg.PhraseThreshold, 'f', 0, 64),
		"min_word_length":  strconv.Itoa(s.cfg.MinWordLength),
		"candidate_limit":  strconv.Itoa(s.cfg.CandidateLimit),
		"short_variation":  strconv.Itoa(s.cfg.ShortVariation),
		"scorers":          strconv.Itoa(len(s.cfg.Scorers)),
	}}
}
