package extraction

import (
	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/ontology"
	"github.com/spigell/ats-screener/internal/textutil"
)

// Strategy represents a single extraction pass over a document.
type Strategy interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Extract(doc *Document, deps Deps) []SkillMatch
}

// Deps aggregates dependencies shared across all strategies.
type Deps struct {
	Ontology *ontology.Ontology
	Logger   *zap.Logger
}

// Document is the input text prepared once per extraction call.
type Document struct {
	Raw       string
	Clean     string
	Sentences []string
	Words     []string
}

// NewDocument normalizes text for matching.
func NewDocument(text string) *Document {
	lines := textutil.CleanLines(text)
	clean := textutil.Clean(text)
	return &Document{
		Raw:       text,
		Clean:     clean,
		Sentences: textutil.Sentences(lines),
		Words:     textutil.Words(clean),
	}
}

// Step describes the result of executing a strategy.
type Step struct {
	Matches int
	Skills  int
}

// Status represents runtime information about a strategy.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// DisableByName marks a strategy with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Strategy, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the enabled strategies sequentially and returns every match
// they produced, in strategy order.
func Run(doc *Document, deps Deps, steps []Strategy) []SkillMatch {
	var all []SkillMatch
	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Debug("strategy disabled", zap.String("name", step.Name()))
			}
			continue
		}

		matches := step.Extract(doc, deps)
		info := Step{Matches: len(matches), Skills: len(uniqueSkills(matches))}

		if deps.Logger != nil {
			deps.Logger.Debug("strategy step",
				zap.String("name", step.Name()),
				zap.Int("matches", info.Matches),
				zap.Int("skills", info.Skills),
			)
		}

		all = append(all, matches...)
	}
	return all
}

// Describe returns status entries for the provided strategies.
func Describe(steps []Strategy) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

func uniqueSkills(matches []SkillMatch) map[string]struct{} {
	out := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		out[m.SkillID] = struct{}{}
	}
	return out
}

// toggle is embedded by strategies to implement Disable/IsEnabled.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }
