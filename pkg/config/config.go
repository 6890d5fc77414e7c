// Package config loads sortbench settings from defaults, an optional YAML
// file and SORTBENCH_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/sortbench/pkg/profile"
	"github.com/Sumatoshi-tech/sortbench/pkg/recommend"
	"github.com/Sumatoshi-tech/sortbench/pkg/timing"
)

// Sentinel validation errors.
var (
	ErrInvalidPort        = errors.New("invalid server port")
	ErrInvalidBodySize    = errors.New("invalid max body size")
	ErrInvalidRateLimit   = errors.New("rate limit must not be negative")
	ErrInvalidThreshold   = errors.New("analysis threshold must be positive")
	ErrInvalidWorkers     = errors.New("workers must be positive")
	ErrInvalidInputLength = errors.New("max input length must not be negative")
	ErrInvalidLogFormat   = errors.New("invalid log format")
	ErrInvalidSampleRatio = errors.New("sample ratio must be within [0, 1]")
)

const (
	maxPort = 65535

	// envPrefix is prepended to every environment override.
	envPrefix = "SORTBENCH"

	// configName is the file searched for when no explicit path is given.
	configName = ".sortbench"
)

// Config holds all sortbench configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    yaml:"server"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"  yaml:"analysis"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"             yaml:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    yaml:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"     yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxBodySize     string        `mapstructure:"max_body_size"    yaml:"max_body_size"`
	CORSOrigins     []string      `mapstructure:"cors_origins"     yaml:"cors_origins"`
	RateLimit       float64       `mapstructure:"rate_limit"       yaml:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"       yaml:"rate_burst"`
	Port            int           `mapstructure:"port"             yaml:"port"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MaxBodyBytes parses MaxBodySize ("16MB", "512KiB").
func (s ServerConfig) MaxBodyBytes() (int64, error) {
	n, err := humanize.ParseBytes(s.MaxBodySize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidBodySize, s.MaxBodySize, err)
	}

	if n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBodySize, s.MaxBodySize)
	}

	return int64(n), nil //nolint:gosec // parsed sizes stay far below MaxInt64
}

// AnalysisConfig holds benchmark thresholds and execution settings.
type AnalysisConfig struct {
	LargeArrayThreshold int  `mapstructure:"large_array_threshold" yaml:"large_array_threshold"`
	DuplicateDivisor    int  `mapstructure:"duplicate_divisor"     yaml:"duplicate_divisor"`
	DisorderDivisor     int  `mapstructure:"disorder_divisor"      yaml:"disorder_divisor"`
	ReverseMergeLimit   int  `mapstructure:"reverse_merge_limit"   yaml:"reverse_merge_limit"`
	LargeInputSize      int  `mapstructure:"large_input_size"      yaml:"large_input_size"`
	Workers             int  `mapstructure:"workers"               yaml:"workers"`
	MaxInputLength      int  `mapstructure:"max_input_length"      yaml:"max_input_length"`
	Parallel            bool `mapstructure:"parallel"              yaml:"parallel"`
}

// Thresholds returns the profiler cut-offs.
func (a AnalysisConfig) Thresholds() profile.Thresholds {
	return profile.Thresholds{
		DuplicateDivisor: a.DuplicateDivisor,
		DisorderDivisor:  a.DisorderDivisor,
	}
}

// Policy returns the recommendation rule table.
func (a AnalysisConfig) Policy() recommend.Policy {
	return recommend.Policy{
		ReverseMergeLimit: a.ReverseMergeLimit,
		LargeInputSize:    a.LargeInputSize,
	}
}

// Harness returns the timing harness.
func (a AnalysisConfig) Harness() timing.Harness {
	return timing.New(a.LargeArrayThreshold)
}

// Parallelism returns the worker limit, 1 when parallel runs are disabled.
func (a AnalysisConfig) Parallelism() int {
	if !a.Parallel {
		return 1
	}

	return a.Workers
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"  yaml:"otlp_headers"`
	Environment  string  `mapstructure:"environment"   yaml:"environment"`
	SampleRatio  float64 `mapstructure:"sample_ratio"  yaml:"sample_ratio"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure" yaml:"otlp_insecure"`
	DebugTrace   bool    `mapstructure:"debug_trace"   yaml:"debug_trace"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty path searches for .sortbench.yaml in the working directory and
// the home directory; a missing file is not an error in that case.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			viperCfg.AddConfigPath(home)
			viperCfg.AddConfigPath(filepath.Join(home, ".config", "sortbench"))
		}
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			MaxBodySize:     DefaultMaxBodySize,
			CORSOrigins:     append([]string(nil), DefaultCORSOrigins...),
			RateLimit:       DefaultRateLimit,
			RateBurst:       DefaultRateBurst,
		},
		Analysis: AnalysisConfig{
			LargeArrayThreshold: DefaultLargeArrayThreshold,
			DuplicateDivisor:    DefaultDuplicateDivisor,
			DisorderDivisor:     DefaultDisorderDivisor,
			ReverseMergeLimit:   DefaultReverseMergeLimit,
			LargeInputSize:      DefaultLargeInputSize,
			Parallel:            DefaultParallel,
			Workers:             DefaultWorkers,
			MaxInputLength:      DefaultMaxInputLength,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Telemetry: TelemetryConfig{
			SampleRatio: DefaultSampleRatio,
			Environment: DefaultEnvironment,
		},
	}
}

func setDefaults(viperCfg *viper.Viper) {
	d := Default()

	viperCfg.SetDefault("server.host", d.Server.Host)
	viperCfg.SetDefault("server.port", d.Server.Port)
	viperCfg.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	viperCfg.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	viperCfg.SetDefault("server.idle_timeout", d.Server.IdleTimeout)
	viperCfg.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	viperCfg.SetDefault("server.max_body_size", d.Server.MaxBodySize)
	viperCfg.SetDefault("server.cors_origins", d.Server.CORSOrigins)
	viperCfg.SetDefault("server.rate_limit", d.Server.RateLimit)
	viperCfg.SetDefault("server.rate_burst", d.Server.RateBurst)

	viperCfg.SetDefault("analysis.large_array_threshold", d.Analysis.LargeArrayThreshold)
	viperCfg.SetDefault("analysis.duplicate_divisor", d.Analysis.DuplicateDivisor)
	viperCfg.SetDefault("analysis.disorder_divisor", d.Analysis.DisorderDivisor)
	viperCfg.SetDefault("analysis.reverse_merge_limit", d.Analysis.ReverseMergeLimit)
	viperCfg.SetDefault("analysis.large_input_size", d.Analysis.LargeInputSize)
	viperCfg.SetDefault("analysis.parallel", d.Analysis.Parallel)
	viperCfg.SetDefault("analysis.workers", d.Analysis.Workers)
	viperCfg.SetDefault("analysis.max_input_length", d.Analysis.MaxInputLength)

	viperCfg.SetDefault("logging.level", d.Logging.Level)
	viperCfg.SetDefault("logging.format", d.Logging.Format)

	viperCfg.SetDefault("telemetry.otlp_endpoint", d.Telemetry.OTLPEndpoint)
	viperCfg.SetDefault("telemetry.otlp_headers", d.Telemetry.OTLPHeaders)
	viperCfg.SetDefault("telemetry.otlp_insecure", d.Telemetry.OTLPInsecure)
	viperCfg.SetDefault("telemetry.debug_trace", d.Telemetry.DebugTrace)
	viperCfg.SetDefault("telemetry.sample_ratio", d.Telemetry.SampleRatio)
	viperCfg.SetDefault("telemetry.environment", d.Telemetry.Environment)
}

// Validate checks every section and returns the first violation.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > maxPort {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}

	if _, err := c.Server.MaxBodyBytes(); err != nil {
		return err
	}

	if c.Server.RateLimit < 0 {
		return fmt.Errorf("%w: %g", ErrInvalidRateLimit, c.Server.RateLimit)
	}

	thresholds := []struct {
		key   string
		value int
	}{
		{"large_array_threshold", c.Analysis.LargeArrayThreshold},
		{"duplicate_divisor", c.Analysis.DuplicateDivisor},
		{"disorder_divisor", c.Analysis.DisorderDivisor},
		{"reverse_merge_limit", c.Analysis.ReverseMergeLimit},
		{"large_input_size", c.Analysis.LargeInputSize},
	}

	for _, th := range thresholds {
		if th.value <= 0 {
			return fmt.Errorf("%w: %s=%d", ErrInvalidThreshold, th.key, th.value)
		}
	}

	if c.Analysis.Parallel && c.Analysis.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Analysis.Workers)
	}

	if c.Analysis.MaxInputLength < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInputLength, c.Analysis.MaxInputLength)
	}

	switch strings.ToLower(c.Logging.Format) {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRatio, c.Telemetry.SampleRatio)
	}

	return nil
}
