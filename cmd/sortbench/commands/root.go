// Package commands implements CLI command handlers for sortbench.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/sortbench/pkg/version"
)

// Persistent flag names.
const (
	flagConfig  = "config"
	flagVerbose = "verbose"
	flagQuiet   = "quiet"
)

// NewRootCommand builds the sortbench command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sortbench",
		Short: "Sortbench - sorting algorithm benchmark and analysis",
		Long: `Sortbench runs six classic sorting algorithms over the same input,
profiles the input distribution, predicts the best algorithm and reports how
the prediction compares with the measured timings.

Commands:
  analyze   Benchmark all algorithms and print the full report
  best      Print only the fastest measured algorithm
  generate  Produce sample inputs of a given shape
  serve     Start the HTTP API
  mcp       Start the MCP server on stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(flagConfig, "", "config file (default: .sortbench.yaml in . or $HOME)")
	rootCmd.PersistentFlags().BoolP(flagVerbose, "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolP(flagQuiet, "q", false, "suppress logging below errors")

	rootCmd.AddCommand(
		NewAnalyzeCommand(),
		NewBestCommand(),
		NewGenerateCommand(),
		NewServeCommand(),
		NewMCPCommand(),
		newVersionCommand(),
	)

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())

			return err //nolint:wrapcheck // stdout write
		},
	}
}
