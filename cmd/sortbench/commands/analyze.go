package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/sortbench/pkg/input"
	"github.com/Sumatoshi-tech/sortbench/pkg/observability"
	"github.com/Sumatoshi-tech/sortbench/pkg/plotpage"
	"github.com/Sumatoshi-tech/sortbench/pkg/renderer"
	"github.com/Sumatoshi-tech/sortbench/pkg/terminal"
)

// ErrNoAlgorithms is returned by best when the selected suite yields no result.
var ErrNoAlgorithms = errors.New("no sorting algorithms available")

// benchFlags are shared by analyze and best.
type benchFlags struct {
	inputFormat string
	format      string
	output      string
	algorithms  []string
	theme       string
	workers     int
	skipInvalid bool
	parallel    bool
	noColor     bool
	showSorted  bool
}

func (bf *benchFlags) register(cmd *cobra.Command, formats []string) {
	cmd.Flags().StringVar(&bf.inputFormat, "input-format", string(input.FormatAuto), "Input format: auto, json, csv, text")
	cmd.Flags().StringVarP(&bf.format, "format", "f", renderer.FormatText, fmt.Sprintf("Output format: %v", formats))
	cmd.Flags().StringVarP(&bf.output, "output", "o", "", "Write output to file instead of stdout")
	cmd.Flags().StringSliceVarP(&bf.algorithms, "algorithms", "a", nil, "Algorithms to run (default: all), e.g. quick,merge")
	cmd.Flags().StringVar(&bf.theme, "theme", string(plotpage.ThemeLight), "Plot theme: light, dark")
	cmd.Flags().IntVar(&bf.workers, "workers", 0, "Parallel workers when --parallel is set (0 = config)")
	cmd.Flags().BoolVar(&bf.skipInvalid, "skip-invalid", false, "Skip tokens that are not integers instead of failing")
	cmd.Flags().BoolVar(&bf.parallel, "parallel", false, "Run algorithms concurrently")
	cmd.Flags().BoolVar(&bf.noColor, "no-color", false, "Disable colored text output")
	cmd.Flags().BoolVar(&bf.showSorted, "show-sorted", false, "Include a preview of the sorted output in text mode")
}

func (bf *benchFlags) envOptions(cmd *cobra.Command) envOptions {
	opts := envOptions{mode: observability.ModeCLI, algorithms: bf.algorithms, workers: bf.workers}

	if cmd.Flags().Changed("parallel") {
		opts.parallel = &bf.parallel
	}

	return opts
}

func (bf *benchFlags) renderOptions() (renderer.Options, error) {
	theme, err := plotpage.ParseTheme(bf.theme)
	if err != nil {
		return renderer.Options{}, err //nolint:wrapcheck // sentinel already names the flag value
	}

	term := terminal.NewConfig()
	term.NoColor = term.NoColor || bf.noColor || bf.output != ""

	return renderer.Options{Terminal: term, Theme: theme, ShowSorted: bf.showSorted}, nil
}

func (bf *benchFlags) readData(cmd *cobra.Command, args []string) ([]int, error) {
	format, err := input.ParseFormat(bf.inputFormat)
	if err != nil {
		return nil, err //nolint:wrapcheck // sentinel already names the flag value
	}

	r, closeInput, err := openInput(cmd, args)
	if err != nil {
		return nil, err
	}

	data, err := input.Read(r, input.Options{Format: format, Lenient: bf.skipInvalid})

	return data, errors.Join(err, closeInput())
}

// withOutput runs write against the configured destination and closes it.
func (bf *benchFlags) withOutput(cmd *cobra.Command, write func(io.Writer) error) error {
	w, closeOutput, err := openOutput(cmd, bf.output)
	if err != nil {
		return err
	}

	err = write(w)
	if closeErr := closeOutput(); closeErr != nil && err == nil {
		err = fmt.Errorf("close output: %w", closeErr)
	}

	if err != nil && bf.output != "" {
		_ = os.Remove(bf.output)
	}

	return err
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	bf := &benchFlags{}

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Benchmark all algorithms on an input and report the results",
		Long: `Read integers from a file (or stdin when omitted or "-"), profile their
distribution, run every selected algorithm and report timings, the
recommendation and its improvement over BubbleSort.

Input may be a JSON array, a JSON object {"data": [...]}, or values
separated by commas, semicolons, spaces or newlines.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, bf)
		},
	}

	bf.register(cmd, renderer.ReportFormats())

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, bf *benchFlags) (err error) {
	format, err := renderer.ValidateFormat(bf.format, renderer.ReportFormats())
	if err != nil {
		return err //nolint:wrapcheck // sentinel already names the flag value
	}

	renderOpts, err := bf.renderOptions()
	if err != nil {
		return err
	}

	data, err := bf.readData(cmd, args)
	if err != nil {
		return err
	}

	e, err := setup(cmd, bf.envOptions(cmd))
	if err != nil {
		return err
	}

	defer func() { err = errors.Join(err, e.close(cmd.Context())) }()

	report := e.analyzer.Analyze(cmd.Context(), data)

	return bf.withOutput(cmd, func(w io.Writer) error {
		return renderer.Render(w, report, format, renderOpts)
	})
}

// NewBestCommand creates the best command.
func NewBestCommand() *cobra.Command {
	bf := &benchFlags{}

	cmd := &cobra.Command{
		Use:   "best [file]",
		Short: "Benchmark all algorithms and print only the fastest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBest(cmd, args, bf)
		},
	}

	bf.register(cmd, renderer.ResultFormats())

	return cmd
}

func runBest(cmd *cobra.Command, args []string, bf *benchFlags) (err error) {
	format, err := renderer.ValidateFormat(bf.format, renderer.ResultFormats())
	if err != nil {
		return err //nolint:wrapcheck // sentinel already names the flag value
	}

	renderOpts, err := bf.renderOptions()
	if err != nil {
		return err
	}

	data, err := bf.readData(cmd, args)
	if err != nil {
		return err
	}

	e, err := setup(cmd, bf.envOptions(cmd))
	if err != nil {
		return err
	}

	defer func() { err = errors.Join(err, e.close(cmd.Context())) }()

	best, ok := e.analyzer.GetBest(cmd.Context(), data)
	if !ok {
		return ErrNoAlgorithms
	}

	return bf.withOutput(cmd, func(w io.Writer) error {
		return renderer.RenderResult(w, best, format, renderOpts)
	})
}

