package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/spigell/ats-screener/internal/report"
	"github.com/spigell/ats-screener/internal/requirements"
	"github.com/spigell/ats-screener/internal/screening"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultJobName = "default"

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score every resume in a directory against every job",
	Run: func(cmd *cobra.Command, _ []string) {
		batch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("resumes-dir", "r", "", "directory with resume text files")
	batchCmd.Flags().StringP("jobs-dir", "J", "", "directory with job description files (default is the configured requirements)")
	batchCmd.Flags().StringP("output", "o", "", "write the JSON report to this file, - for stdout")
	batchCmd.Flags().StringP("xlsx", "x", "", "write an Excel workbook to this file")
	batchCmd.Flags().IntP("workers", "w", 0, "number of concurrent workers (default from config)")

	viper.BindPFlag("batch.workers", batchCmd.Flags().Lookup("workers"))
}

func batch(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, config, e := setup()

	resumesDir, _ := cmd.Flags().GetString("resumes-dir")
	if strings.TrimSpace(resumesDir) == "" {
		logger.Fatal("resumes directory is required", zap.String("hint", "pass --resumes-dir"))
	}

	texts, err := e.loader.LoadDir(resumesDir)
	if err != nil {
		logger.Fatal("loading resumes", zap.Error(err))
	}

	resumes := make([]screening.Document, 0, len(texts))
	for _, t := range texts {
		resumes = append(resumes, screening.Document{Name: t.Name, Text: t.Body})
	}

	jobsDir, _ := cmd.Flags().GetString("jobs-dir")
	jobs, err := loadJobs(e, jobsDir)
	if err != nil {
		logger.Fatal("loading jobs", zap.Error(err))
	}

	if len(resumes) == 0 || len(jobs) == 0 {
		logger.Info("exiting", zap.String("reason", "nothing to score"),
			zap.Int("resumes", len(resumes)),
			zap.Int("jobs", len(jobs)),
		)
		return
	}

	logger.Info("starting the batch",
		zap.Int("resumes", len(resumes)),
		zap.Int("jobs", len(jobs)),
		zap.Int("workers", config.Batch.Workers),
	)

	result, err := e.screener.Batch(ctx, resumes, jobs)
	if err != nil {
		logger.Fatal("batch failed", zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")
	switch output {
	case "":
	case "-":
		if err := report.WriteJSON(os.Stdout, result); err != nil {
			logger.Fatal("writing report", zap.Error(err))
		}
	default:
		if err := report.WriteFile(output, result); err != nil {
			logger.Fatal("writing report", zap.Error(err))
		}
		logger.Info("report written", zap.String("filename", output))
	}

	if xlsx, _ := cmd.Flags().GetString("xlsx"); xlsx != "" {
		path, err := report.ExportExcel(result, e.scorer.Rules().Rules(), xlsx)
		if err != nil {
			logger.Fatal("exporting workbook", zap.Error(err))
		}
		logger.Info("workbook written", zap.String("filename", path))
	}

	if output != "-" {
		if err := report.BatchText(os.Stdout, result); err != nil {
			logger.Fatal("printing report", zap.Error(err))
		}
	}
}

// loadJobs parses every job description in dir. Without a directory the
// configured requirements form the only job.
func loadJobs(e *engine, dir string) ([]screening.Job, error) {
	if strings.TrimSpace(dir) == "" {
		return []screening.Job{{Name: defaultJobName, Requirements: e.requirements}}, nil
	}

	texts, err := e.loader.LoadDir(dir)
	if err != nil {
		return nil, err
	}

	jobs := make([]screening.Job, 0, len(texts))
	for _, t := range texts {
		jobs = append(jobs, screening.Job{
			Name:         t.Name,
			Requirements: requirements.Parse(t.Body, e.extractor, e.requirements),
		})
	}
	return jobs, nil
}
