package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/sortbench/internal/server"
	"github.com/Sumatoshi-tech/sortbench/pkg/observability"
)

// NewServeCommand creates the HTTP server command.
func NewServeCommand() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API:
  POST /api/sort/analyze   full report for {"data": [...]}
  POST /api/sort/best      fastest result for {"data": [...]}
  GET  /healthz, /readyz   liveness and readiness
  GET  /metrics            Prometheus scrape endpoint

The server drains in-flight requests on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			e, err := setup(cmd, envOptions{mode: observability.ModeServe, prometheus: true})
			if err != nil {
				return err
			}

			defer func() { err = errors.Join(err, e.close(cmd.Context())) }()

			serverCfg := e.cfg.Server
			if cmd.Flags().Changed("host") {
				serverCfg.Host = host
			}

			if cmd.Flags().Changed("port") {
				serverCfg.Port = port
			}

			srv, err := server.New(server.Options{
				Analyzer:       e.analyzer,
				Config:         serverCfg,
				MaxInputLength: e.cfg.Analysis.MaxInputLength,
				Logger:         e.providers.Logger,
				Tracer:         e.providers.Tracer,
				RED:            e.red,
				MetricsHandler: e.providers.MetricsHandler,
			})
			if err != nil {
				return err //nolint:wrapcheck // already descriptive
			}

			return srv.ListenAndServe(cmd.Context()) //nolint:wrapcheck // already descriptive
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (overrides config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides config)")

	return cmd
}
