package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/sortbench/pkg/mcp"
	"github.com/Sumatoshi-tech/sortbench/pkg/observability"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes the sort analysis engine as tools that AI agents
can discover and invoke:
  - sortbench_analyze: full benchmark report for a list of integers
  - sortbench_best: fastest measured algorithm for a list of integers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			e, err := setup(cmd, envOptions{mode: observability.ModeMCP, logJSON: true, debug: debug})
			if err != nil {
				return err
			}

			defer func() { err = errors.Join(err, e.close(cmd.Context())) }()

			srv := mcp.NewServer(mcp.ServerDeps{
				Analyzer:       e.analyzer,
				MaxInputLength: e.cfg.Analysis.MaxInputLength,
				Logger:         e.providers.Logger,
				Metrics:        e.red,
				Tracer:         e.providers.Tracer,
			})

			return srv.Run(cmd.Context()) //nolint:wrapcheck // already descriptive
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")

	return cmd
}
