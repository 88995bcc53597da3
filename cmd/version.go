package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Actual version and commit can be specified in build command.
var (
	version = "unknown"
	commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s (commit: %s)\n", app, version, commit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
