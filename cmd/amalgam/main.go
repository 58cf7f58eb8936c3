// Package main provides the entry point for the amalgam CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/amalgam/cmd/amalgam/commands"
	"github.com/Sumatoshi-tech/amalgam/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "amalgam",
		Short: "Amalgam - deterministic source file amalgamation",
		Long: `Amalgam merges every source file matched by a glob pattern into one
compilation unit: import directives are deduplicated, the per-file
namespace wrapping is stripped, and the merged body is re-wrapped under a
single namespace, optionally headed by a license block.

Commands:
  build     Amalgamate all configured targets
  check     Verify outputs are up to date with their inputs
  validate  Validate an amalgam.yaml manifest against the schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewBuildCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "amalgam %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
