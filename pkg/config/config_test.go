package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/sortbench/pkg/config"
	"github.com/Sumatoshi-tech/sortbench/pkg/profile"
	"github.com/Sumatoshi-tech/sortbench/pkg/recommend"
	"github.com/Sumatoshi-tech/sortbench/pkg/timing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".sortbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, profile.DefaultThresholds(), cfg.Analysis.Thresholds())
	assert.Equal(t, recommend.DefaultPolicy(), cfg.Analysis.Policy())
	assert.Equal(t, timing.DefaultLargeArrayThreshold, cfg.Analysis.Harness().LargeArrayThreshold)
	assert.Equal(t, 1, cfg.Analysis.Parallelism())
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `server:
  port: 9090
  read_timeout: 5s
  max_body_size: 2MiB
  cors_origins: ["https://example.com"]
analysis:
  large_array_threshold: 500
  duplicate_divisor: 4
  parallel: true
  workers: 3
logging:
  level: debug
  format: json
telemetry:
  otlp_endpoint: localhost:4317
  sample_ratio: 0.25
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.CORSOrigins)

	size, err := cfg.Server.MaxBodyBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(2<<20), size)

	assert.Equal(t, 500, cfg.Analysis.LargeArrayThreshold)
	assert.Equal(t, 4, cfg.Analysis.Thresholds().DuplicateDivisor)
	assert.Equal(t, config.DefaultDisorderDivisor, cfg.Analysis.DisorderDivisor)
	assert.Equal(t, 3, cfg.Analysis.Parallelism())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
	assert.InDelta(t, 0.25, cfg.Telemetry.SampleRatio, 1e-9)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SORTBENCH_SERVER_PORT", "7070")
	t.Setenv("SORTBENCH_ANALYSIS_REVERSE_MERGE_LIMIT", "42")

	cfg, err := config.LoadConfig(writeConfig(t, "server:\n  port: 9090\n"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 42, cfg.Analysis.Policy().ReverseMergeLimit)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "port", content: "server:\n  port: 70000\n", wantErr: config.ErrInvalidPort},
		{name: "body_size", content: "server:\n  max_body_size: lots\n", wantErr: config.ErrInvalidBodySize},
		{name: "zero_body_size", content: "server:\n  max_body_size: 0B\n", wantErr: config.ErrInvalidBodySize},
		{name: "rate", content: "server:\n  rate_limit: -1\n", wantErr: config.ErrInvalidRateLimit},
		{name: "threshold", content: "analysis:\n  disorder_divisor: 0\n", wantErr: config.ErrInvalidThreshold},
		{name: "workers", content: "analysis:\n  parallel: true\n  workers: 0\n", wantErr: config.ErrInvalidWorkers},
		{name: "input_length", content: "analysis:\n  max_input_length: -5\n", wantErr: config.ErrInvalidInputLength},
		{name: "log_format", content: "logging:\n  format: xml\n", wantErr: config.ErrInvalidLogFormat},
		{name: "sample_ratio", content: "telemetry:\n  sample_ratio: 2\n", wantErr: config.ErrInvalidSampleRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParallelismDisabledIgnoresWorkers(t *testing.T) {
	t.Parallel()

	a := config.AnalysisConfig{Parallel: false, Workers: 8}
	assert.Equal(t, 1, a.Parallelism())
}
