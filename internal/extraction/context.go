package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/ats-screener/internal/ontology"
	"github.com/spigell/ats-screener/internal/textutil"
)

// spanWidth is the number of words following a trigger that belong to its span.
const spanWidth = 4

var (
	spanTriggers = toSet(
		"used", "utilized", "implemented", "developed", "built", "created", "designed",
		"experience", "proficient", "skilled", "expert", "familiar",
		"with", "using", "via", "through", "by",
		"integrated", "configured", "deployed", "maintained",
		"responsible", "worked", "collaborated", "partnered",
		"managed", "led", "oversaw",
	)

	contextIndicators = []string{
		"used", "utilized", "implemented", "developed", "built",
		"created", "designed", "integrated", "configured",
		"experience", "proficient", "skilled", "expert",
		"responsible", "managed", "led", "oversaw",
	}

	responsibilityPatterns = compileAll(
		`responsible for`, `in charge of`, `managed`, `led`, `oversaw`,
		`developed`, `created`, `built`, `implemented`, `integrated`,
		`configured`, `deployed`, `maintained`,
	)
)

type contextStrategy struct {
	toggle
	shortLen int
}

// NewContext creates the strategy that looks for skills near verbs of use
// or possession. Word spans after a trigger score 0.8, sentences score 0.9
// with an indicator verb and 0.7 without, and responsibility clauses score 0.95.
func NewContext(shortLen int) Strategy {
	return &contextStrategy{shortLen: shortLen}
}

func (s *contextStrategy) Name() string { return StrategyContext }

func (s *contextStrategy) Extract(doc *Document, deps Deps) []SkillMatch {
	defs := deps.Ontology.Definitions()

	var matches []SkillMatch
	matches = append(matches, s.spans(doc, defs)...)
	matches = append(matches, s.sentences(doc, defs)...)
	matches = append(matches, s.responsibilities(doc, defs)...)
	return matches
}

func (s *contextStrategy) spans(doc *Document, defs []ontology.SkillDefinition) []SkillMatch {
	var matches []SkillMatch
	for i, w := range doc.Words {
		if _, ok := spanTriggers[textutil.CleanWord(w)]; !ok {
			continue
		}
		end := min(i+1+spanWidth, len(doc.Words))
		span := strings.Join(doc.Words[i:end], " ")
		matches = append(matches, s.scan(span, defs, 0.8)...)
	}
	return matches
}

func (s *contextStrategy) sentences(doc *Document, defs []ontology.SkillDefinition) []SkillMatch {
	var matches []SkillMatch
	for _, sentence := range doc.Sentences {
		confidence := 0.7
		if hasIndicator(sentence) {
			confidence = 0.9
		}
		matches = append(matches, s.scan(sentence, defs, confidence)...)
	}
	return matches
}

func (s *contextStrategy) responsibilities(doc *Document, defs []ontology.SkillDefinition) []SkillMatch {
	var matches []SkillMatch
	for _, p := range responsibilityPatterns {
		for _, m := range p.FindAllStringSubmatch(doc.Clean, -1) {
			for _, match := range s.scan(m[1], defs, 0.95) {
				match.MatchedText = m[0]
				matches = append(matches, match)
			}
		}
	}
	return matches
}

// scan emits one match per skill whose first variation occurs in text.
func (s *contextStrategy) scan(text string, defs []ontology.SkillDefinition, confidence float64) []SkillMatch {
	var matches []SkillMatch
	for _, def := range defs {
		if _, ok := firstContained(text, def.Variations, s.shortLen); ok {
			matches = append(matches, SkillMatch{
				SkillID:     def.ID,
				Confidence:  confidence,
				MatchedText: text,
				Strategy:    StrategyContext,
			})
		}
	}
	return matches
}

func (s *contextStrategy) Status() Status {
	return Status{Name: s.Name(), Enabled: s.IsEnabled(), Reason: s.reason, Details: map[string]string{
		"span_confidence":           "0.80",
		"sentence_confidence":       "0.90/0.70",
		"responsibility_confidence": "0.95",
		"short_variation":           strconv.Itoa(s.shortLen),
	}}
}

func hasIndicator(sentence string) bool {
	for _, indicator := range contextIndicators {
		if textutil.Contains(sentence, indicator, 3) {
			return true
		}
	}
	return false
}

func compileAll(verbs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(verbs))
	for _, v := range verbs {
		out = append(out, regexp.MustCompile(`\b`+v+`\s+([^.]*)`))
	}
	return out
}

func toSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}
