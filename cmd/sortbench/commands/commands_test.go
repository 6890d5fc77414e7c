package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/sortbench/cmd/sortbench/commands"
	"github.com/Sumatoshi-tech/sortbench/pkg/input"
	"github.com/Sumatoshi-tech/sortbench/pkg/profile"
	"github.com/Sumatoshi-tech/sortbench/pkg/renderer"
	"github.com/Sumatoshi-tech/sortbench/pkg/sorting"
)

// execute runs the root command and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := commands.NewRootCommand()

	var stdout, stderr bytes.Buffer

	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	root := commands.NewRootCommand()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"analyze", "best", "generate", "serve", "mcp", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "verbose", "quiet"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestAnalyze_JSONFromStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "[3, 1, 2]", "analyze", "-q", "--format", "json")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, "random", report["distributionProfile"])
	assert.Equal(t, "QuickSort", report["recommendedAlgorithm"])
	assert.InDelta(t, 3, report["inputSize"], 0)

	results, ok := report["results"].([]any)
	require.True(t, ok)
	assert.Len(t, results, len(sorting.Suite()))
}

func TestAnalyze_AlgorithmSubset(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "5,4,3,2,1", "analyze", "-q", "-f", "json", "-a", "quick,merge")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	results, ok := report["results"].([]any)
	require.True(t, ok)
	assert.Len(t, results, 2)
	assert.Nil(t, report["baseline"])
	assert.Equal(t, "MergeSort", report["recommendedAlgorithm"])
}

func TestAnalyze_UnknownAlgorithm(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "1,2", "analyze", "-q", "-a", "bogo")
	require.ErrorIs(t, err, sorting.ErrUnknownAlgorithm)
}

func TestAnalyze_TextToFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "data.csv")
	out := filepath.Join(dir, "report.txt")

	require.NoError(t, os.WriteFile(in, []byte("9 8 7 6 5 4 3 2 1 0\n"), 0o600))

	stdout, err := execute(t, "", "analyze", "-q", in, "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	report, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(report), "SORT ANALYSIS")
	assert.Contains(t, string(report), "reverse")
	assert.NotContains(t, string(report), "\x1b[")
}

func TestAnalyze_Plot(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "[4,2,9,1]", "analyze", "-q", "-f", "html", "--theme", "dark")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
}

func TestAnalyze_Errors(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "1,2", "analyze", "-q", "-f", "xml")
	require.ErrorIs(t, err, renderer.ErrUnsupportedFormat)

	_, err = execute(t, "1,x,2", "analyze", "-q")
	require.ErrorIs(t, err, input.ErrInvalidValue)

	_, err = execute(t, "", "analyze", "-q")
	require.ErrorIs(t, err, input.ErrEmptyInput)

	_, err = execute(t, "1,2", "analyze", "-q", "--input-format", "xml")
	require.ErrorIs(t, err, input.ErrUnsupportedFormat)
}

func TestAnalyze_SkipInvalid(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "1,x,2", "analyze", "-q", "-f", "json", "--skip-invalid")
	require.NoError(t, err)
	assert.Contains(t, out, `"inputSize": 2`)
}

func TestAnalyze_ConfigFile(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "sortbench.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("analysis:\n  large_array_threshold: 2\n"), 0o600))

	out, err := execute(t, "[3,2,1]", "analyze", "-q", "--config", cfgPath, "-f", "json")
	require.NoError(t, err)

	var report struct {
		Results []struct {
			Mode string `json:"timingMode"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotEmpty(t, report.Results)

	for _, r := range report.Results {
		assert.Equal(t, "sampled", r.Mode)
	}
}

func TestAnalyze_Parallel(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "[3,2,1,5,4]", "analyze", "-q", "-f", "json", "--parallel", "--workers", "3")
	require.NoError(t, err)

	var report struct {
		Results []struct {
			Algorithm string `json:"algorithm"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	names := sorting.Names()
	require.Len(t, report.Results, len(names))

	for i, r := range report.Results {
		assert.Equal(t, string(names[i]), r.Algorithm)
	}
}

func TestBest_YAML(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "[3,1,2]", "best", "-q", "-f", "yaml")
	require.NoError(t, err)

	var best map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &best))
	assert.Equal(t, []any{1, 2, 3}, best["sorted_data"])
	assert.NotEmpty(t, best["algorithm"])
}

func TestBest_RejectsPlot(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "[1]", "best", "-q", "-f", "plot")
	require.ErrorIs(t, err, renderer.ErrUnsupportedFormat)
}

func TestGenerate_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shape  string
		format string
		want   profile.Label
	}{
		{shape: "reverse", format: "csv", want: profile.Reverse},
		{shape: "nearly-sorted", format: "json", want: profile.NearlySorted},
		{shape: "many-duplicates", format: "csv", want: profile.ManyDuplicates},
	}

	for _, tt := range tests {
		t.Run(tt.shape, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, "", "generate", "-q", "-s", tt.shape, "-n", "1000", "--seed", "7", "-f", tt.format)
			require.NoError(t, err)

			data, err := input.Parse([]byte(out), input.Options{})
			require.NoError(t, err)
			assert.Len(t, data, 1000)
			assert.Equal(t, tt.want, profile.Classify(data))
		})
	}
}

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "generate", "-s", "spiral")
	require.ErrorIs(t, err, input.ErrUnknownShape)

	_, err = execute(t, "", "generate", "-f", "xml")
	require.ErrorIs(t, err, commands.ErrGenerateFormat)

	_, err = execute(t, "", "generate", "--size=-3")
	require.ErrorIs(t, err, input.ErrNegativeLength)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "sortbench "))
}

func TestMCPCommand_Flags(t *testing.T) {
	t.Parallel()

	cmd := commands.NewMCPCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "mcp", cmd.Use)
	assert.NotEmpty(t, cmd.Long)

	flag := cmd.Flags().Lookup("debug")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	t.Parallel()

	cmd := commands.NewServeCommand()
	assert.NotNil(t, cmd.Flags().Lookup("host"))
	assert.NotNil(t, cmd.Flags().Lookup("port"))
}
