// Package input loads raw resume and job description text.
package input

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ErrEmpty is returned when a source yields no text.
var ErrEmpty = errors.New("text is empty")

// Extensions lists the plain-text file types LoadDir picks up.
var Extensions = []string{".txt", ".md", ".text"}

// Source describes where a text comes from.
type Source struct {
	// Name is used in messages and reports.
	Name string
	// Value is inline text provided via flags or prompts.
	Value string
	// File points to a file with the text. When set it takes precedence
	// over Value.
	File string
}

// Limits bounds accepted text length in runes.
type Limits struct {
	MinLength int `mapstructure:"min-length" validate:"gte=0"`
	MaxLength int `mapstructure:"max-length" validate:"gte=0"`
}

// DefaultLimits returns a 100 rune minimum and a 50000 rune maximum.
func DefaultLimits() Limits {
	return Limits{MinLength: 100, MaxLength: 50000}
}

// Text is a loaded document.
type Text struct {
	Name      string
	Body      string
	Truncated bool
}

// Loader reads texts and applies the length limits.
type Loader struct {
	limits Limits
	logger *zap.Logger
}

// NewLoader creates a loader. A zero MaxLength disables truncation.
func NewLoader(limits Limits, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{limits: limits, logger: log}
}

// Load resolves src. Texts over the maximum length are truncated, texts
// under the minimum only produce a warning. Empty text yields ErrEmpty.
func (l *Loader) Load(src Source) (Text, error) {
	name := strings.TrimSpace(src.Name)
	file := strings.TrimSpace(src.File)
	if name == "" {
		name = filepath.Base(file)
	}
	if name == "" || name == "." {
		name = "text"
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return Text{}, fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
	}

	body := strings.TrimSpace(strings.ToValidUTF8(src.Value, ""))
	if body == "" {
		if file != "" {
			return Text{}, fmt.Errorf("%s file %q: %w", name, file, ErrEmpty)
		}
		return Text{}, fmt.Errorf("%s: %w", name, ErrEmpty)
	}

	out := Text{Name: name, Body: body}
	runes := []rune(body)
	if l.limits.MaxLength > 0 && len(runes) > l.limits.MaxLength {
		out.Body = string(runes[:l.limits.MaxLength])
		out.Truncated = true
		l.logger.Warn("text truncated",
			zap.String("name", name),
			zap.Int("length", len(runes)),
			zap.Int("max_length", l.limits.MaxLength),
		)
	}
	if len(runes) < l.limits.MinLength {
		l.logger.Warn("text is shorter than expected",
			zap.String("name", name),
			zap.Int("length", len(runes)),
			zap.Int("min_length", l.limits.MinLength),
		)
	}
	return out, nil
}

// LoadDir loads every plain-text file in dir, sorted by file name. Empty
// files are skipped with a warning.
func (l *Loader) LoadDir(dir string) ([]Text, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !supported(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	texts := make([]Text, 0, len(names))
	for _, name := range names {
		text, err := l.Load(Source{Name: name, File: filepath.Join(dir, name)})
		if errors.Is(err, ErrEmpty) {
			l.logger.Warn("skipping empty file", zap.String("name", name))
			continue
		}
		if err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	return texts, nil
}

func supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
