package cmd

import (
	"os"

	"github.com/spigell/ats-screener/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the active checklist, weights and matching strategies",
	Run: func(_ *cobra.Command, _ []string) {
		logger, _, e := setup()

		if err := report.Rules(os.Stdout, e.scorer.Weights(), e.scorer.Rules().Rules()); err != nil {
			logger.Fatal("printing rules", zap.Error(err))
		}

		if err := report.Strategies(os.Stdout, e.extractor.Describe()); err != nil {
			logger.Fatal("printing strategies", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
