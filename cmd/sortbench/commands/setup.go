package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/sortbench/pkg/analysis"
	"github.com/Sumatoshi-tech/sortbench/pkg/config"
	"github.com/Sumatoshi-tech/sortbench/pkg/observability"
	"github.com/Sumatoshi-tech/sortbench/pkg/sorting"
	"github.com/Sumatoshi-tech/sortbench/pkg/version"
)

// env carries everything a command needs after configuration and
// observability are initialized.
type env struct {
	cfg       *config.Config
	providers observability.Providers
	red       *observability.REDMetrics
	analyzer  *analysis.Analyzer
}

// envOptions tunes setup per command.
type envOptions struct {
	mode       observability.AppMode
	algorithms []string
	parallel   *bool
	workers    int
	prometheus bool
	logJSON    bool
	debug      bool
	logOut     io.Writer
}

// setup loads configuration, initializes observability and builds the
// analyzer. Callers must call env.close.
func setup(cmd *cobra.Command, opts envOptions) (*env, error) {
	configPath, _ := cmd.Flags().GetString(flagConfig) //nolint:errcheck // absent outside the root command.

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err //nolint:wrapcheck // already descriptive
	}

	if opts.parallel != nil {
		cfg.Analysis.Parallel = *opts.parallel
	}

	if opts.workers > 0 {
		cfg.Analysis.Workers = opts.workers
	}

	obsCfg := observabilityConfig(cmd, cfg, opts)

	logOut := opts.logOut
	if logOut == nil {
		logOut = cmd.ErrOrStderr()
	}

	providers, err := observability.InitWithWriter(obsCfg, logOut)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	e := &env{cfg: cfg, providers: providers}

	e.red, err = observability.NewREDMetrics(providers.Meter)
	if err != nil {
		return nil, errors.Join(err, e.close(cmd.Context()))
	}

	sortMetrics, err := observability.NewSortMetrics(providers.Meter)
	if err != nil {
		return nil, errors.Join(err, e.close(cmd.Context()))
	}

	analyzerOpts := []analysis.Option{
		analysis.WithThresholds(cfg.Analysis.Thresholds()),
		analysis.WithPolicy(cfg.Analysis.Policy()),
		analysis.WithHarness(cfg.Analysis.Harness()),
		analysis.WithMaxParallelism(cfg.Analysis.Parallelism()),
		analysis.WithLogger(providers.Logger),
		analysis.WithTracer(providers.Tracer),
		analysis.WithMetrics(sortMetrics),
	}

	if len(opts.algorithms) > 0 {
		suite, selectErr := sorting.Select(opts.algorithms)
		if selectErr != nil {
			return nil, errors.Join(selectErr, e.close(cmd.Context()))
		}

		analyzerOpts = append(analyzerOpts, analysis.WithSuite(suite))
	}

	e.analyzer = analysis.New(analyzerOpts...)

	return e, nil
}

func (e *env) close(ctx context.Context) error {
	if e.providers.Shutdown == nil {
		return nil
	}

	err := e.providers.Shutdown(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("observability shutdown: %w", err)
	}

	return nil
}

func observabilityConfig(cmd *cobra.Command, cfg *config.Config, opts envOptions) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.Mode = opts.mode
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.DebugTrace = cfg.Telemetry.DebugTrace
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.Prometheus = opts.prometheus
	obsCfg.LogLevel = observability.ParseLevel(cfg.Logging.Level)
	obsCfg.LogJSON = opts.logJSON || strings.EqualFold(cfg.Logging.Format, config.LogFormatJSON)

	if verbose, _ := cmd.Flags().GetBool(flagVerbose); verbose || opts.debug { //nolint:errcheck // absent outside the root command.
		obsCfg.LogLevel = slog.LevelDebug
	}

	if opts.debug {
		obsCfg.DebugTrace = true
	}

	if quiet, _ := cmd.Flags().GetBool(flagQuiet); quiet { //nolint:errcheck // absent outside the root command.
		obsCfg.LogLevel = slog.LevelError
	}

	return obsCfg
}

// openOutput returns stdout for an empty path, otherwise a created file.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}

	return f, f.Close, nil
}

// openInput returns stdin for no argument or "-", otherwise the named file.
func openInput(cmd *cobra.Command, args []string) (io.Reader, func() error, error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() error { return nil }, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}

	return f, f.Close, nil
}
