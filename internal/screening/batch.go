package screening

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/ats-screener/internal/logger"
	"github.com/spigell/ats-screener/internal/requirements"
)

// Document is a named resume text.
type Document struct {
	Name string
	Text string
}

// Job is a named set of requirements.
type Job struct {
	Name         string                       `json:"name"`
	Requirements requirements.JobRequirements `json:"requirements"`
}

// Skipped records a pair that was left out of a batch.
type Skipped struct {
	Resume string `json:"resume"`
	Job    string `json:"job"`
	Reason string `json:"reason"`
}

// Summary aggregates a batch.
type Summary struct {
	TotalResumes int     `json:"total_resumes"`
	TotalJobs    int     `json:"total_jobs"`
	TotalMatches int     `json:"total_matches"`
	Skipped      int     `json:"skipped"`
	AverageScore float64 `json:"average_score"`
	Shortlisted  int     `json:"shortlisted"`
}

// BatchReport is the outcome of a batch run. Results are ordered by resume
// index, then job index.
type BatchReport struct {
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
	Summary   Summary   `json:"summary"`
	Results   []Result  `json:"results"`
	Skipped   []Skipped `json:"skipped"`
}

// Batch screens every resume against every job on a bounded pool of
// workers. A pair that exceeds the per-pair timeout is skipped and the
// batch continues. An error is returned only when ctx itself is done.
//
// A timed-out pair frees its worker slot at once while the stage it was
// in (analyze, extract or score) finishes in the background, so for a
// short while more than Workers stages can be running.
func (s *Screener) Batch(ctx context.Context, resumes []Document, jobs []Job) (BatchReport, error) {
	report := BatchReport{
		RunID:     s.newID(),
		Timestamp: s.now().UTC(),
		Results:   []Result{},
		Skipped:   []Skipped{},
	}

	total := len(resumes) * len(jobs)
	results := make([]*Result, total)
	skipped := make([]string, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	log := logger.WithFields(s.logger, zap.String(logger.FieldRunID, report.RunID))

	for i, resume := range resumes {
		for j, job := range jobs {
			idx := i*len(jobs) + j
			g.Go(func() error {
				pairLog := logger.WithPair(log, resume.Name, job.Name)

				res, err := s.screenPair(gctx, resume.Text, job.Requirements)
				if err != nil {
					if errors.Is(err, ErrTimeout) && ctx.Err() == nil {
						skipped[idx] = err.Error()
						pairLog.Warn("pair skipped", zap.String("reason", skipped[idx]))
						return nil
					}
					return err
				}

				res.Resume, res.Job = resume.Name, job.Name
				results[idx] = &res
				pairLog.Debug("pair scored", zap.Float64("score", res.Match.OverallScore))
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return report, err
	}

	for i, resume := range resumes {
		for j, job := range jobs {
			idx := i*len(jobs) + j
			if results[idx] != nil {
				report.Results = append(report.Results, *results[idx])
				continue
			}
			report.Skipped = append(report.Skipped, Skipped{Resume: resume.Name, Job: job.Name, Reason: skipped[idx]})
		}
	}

	report.Summary = summarize(len(resumes), len(jobs), report)
	log.Info("batch finished",
		zap.Int("matches", report.Summary.TotalMatches),
		zap.Int("skipped", report.Summary.Skipped),
		zap.Int("shortlisted", report.Summary.Shortlisted),
	)
	return report, nil
}

func (s *Screener) screenPair(ctx context.Context, text string, reqs requirements.JobRequirements) (Result, error) {
	if s.cfg.Timeout <= 0 {
		return s.Screen(ctx, text, reqs)
	}

	pctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	return s.Screen(pctx, text, reqs)
}

func summarize(resumes, jobs int, report BatchReport) Summary {
	out := Summary{
		TotalResumes: resumes,
		TotalJobs:    jobs,
		TotalMatches: len(report.Results),
		Skipped:      len(report.Skipped),
	}

	var sum float64
	for _, r := range report.Results {
		sum += r.Match.OverallScore
		if r.Shortlisted {
			out.Shortlisted++
		}
	}
	if out.TotalMatches > 0 {
		out.AverageScore = sum / float64(out.TotalMatches)
	}
	return out
}
