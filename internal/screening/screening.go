// Package screening runs the analyze, extract and score pipeline for one
// resume/job pair and for whole batches of them.
package screening

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/extraction"
	"github.com/spigell/ats-screener/internal/requirements"
	"github.com/spigell/ats-screener/internal/scoring"
	"github.com/spigell/ats-screener/internal/sections"
)

// ErrTimeout is returned when a pair does not finish within its time budget.
var ErrTimeout = errors.New("screening timed out")

var validate = validator.New()

// Config controls batch execution.
type Config struct {
	Workers      int           `mapstructure:"workers" validate:"gte=1,lte=256"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"`
	MinimumScore float64       `mapstructure:"minimum-score" validate:"gte=0,lte=100"`
}

// DefaultConfig returns 10 workers, a 30s budget per pair and a shortlist
// threshold of 70.
func DefaultConfig() Config {
	return Config{
		Workers:      10,
		Timeout:      30 * time.Second,
		MinimumScore: 70,
	}
}

// Result is the outcome of one resume against one job.
type Result struct {
	Resume      string                     `json:"resume"`
	Job         string                     `json:"job"`
	Skills      extraction.ExtractedSkills `json:"skills"`
	Analysis    sections.Analysis          `json:"analysis"`
	Match       scoring.MatchResult        `json:"match"`
	Shortlisted bool                       `json:"shortlisted"`
}

type pipeline func(ctx context.Context, text string, reqs requirements.JobRequirements) (Result, error)

// Screener ties the analyzer, extractor and scorer together. It is safe for
// concurrent use.
type Screener struct {
	analyzer  *sections.Analyzer
	extractor *extraction.Extractor
	scorer    *scoring.Scorer
	cfg       Config
	logger    *zap.Logger

	run   pipeline
	now   func() time.Time
	newID func() string
}

// New validates cfg and builds a screener.
func New(analyzer *sections.Analyzer, extractor *extraction.Extractor, scorer *scoring.Scorer, cfg Config, log *zap.Logger) (*Screener, error) {
	if analyzer == nil || extractor == nil || scorer == nil {
		return nil, errors.New("screening: analyzer, extractor and scorer are required")
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid batch config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Screener{
		analyzer:  analyzer,
		extractor: extractor,
		scorer:    scorer,
		cfg:       cfg,
		logger:    log,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
	s.run = s.pipeline
	return s, nil
}

// Config returns the batch configuration in use.
func (s *Screener) Config() Config {
	return s.cfg
}

// Screen scores one resume against reqs. It fails only when ctx is done
// before the result is ready; an expired deadline is reported as ErrTimeout.
// Work already running when ctx ends stops at the next stage boundary.
func (s *Screener) Screen(ctx context.Context, text string, reqs requirements.JobRequirements) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, contextError(err)
	}

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := s.run(ctx, text, reqs)
		done <- outcome{res: res, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			return Result{}, contextError(o.err)
		}
		return o.res, nil
	case <-ctx.Done():
		return Result{}, contextError(ctx.Err())
	}
}

// pipeline runs analyze, extract and score, checking ctx between stages.
func (s *Screener) pipeline(ctx context.Context, text string, reqs requirements.JobRequirements) (Result, error) {
	analysis := s.analyzer.Analyze(text)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	skills := s.extractor.Extract(text)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	match := s.scorer.Score(skills, analysis, reqs)

	return Result{
		Skills:      skills,
		Analysis:    analysis,
		Match:       match,
		Shortlisted: match.OverallScore >= s.cfg.MinimumScore,
	}, nil
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
