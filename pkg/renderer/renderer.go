package renderer

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/sortbench/pkg/analysis"
	"github.com/Sumatoshi-tech/sortbench/pkg/plotpage"
	"github.com/Sumatoshi-tech/sortbench/pkg/terminal"
)

const yamlIndent = 2

// Options controls presentation details shared by all formats.
type Options struct {
	Terminal terminal.Config
	Theme    plotpage.Theme

	// ShowSorted includes a preview of the sorted output in text mode.
	ShowSorted bool
}

// Render writes a report in the given format.
func Render(w io.Writer, report analysis.Report, format string, opts Options) error {
	format, err := ValidateFormat(format, ReportFormats())
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatYAML:
		return writeYAML(w, report)
	case FormatPlot:
		return writePlot(w, report, opts)
	default:
		return writeText(w, report, opts)
	}
}

// RenderResult writes a single algorithm result in the given format.
func RenderResult(w io.Writer, result analysis.AlgorithmResult, format string, opts Options) error {
	format, err := ValidateFormat(format, ResultFormats())
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatYAML:
		return writeYAML(w, result)
	default:
		return writeResultText(w, result, opts)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return nil
}
