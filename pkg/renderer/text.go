package renderer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/sortbench/pkg/analysis"
	"github.com/Sumatoshi-tech/sortbench/pkg/terminal"
)

const (
	reportTitle    = "SORT ANALYSIS"
	relativeBarLen = 16
	sortedPreview  = 20
	labelWidth     = 14
)

// Row flags.
const (
	flagRecommended = "recommended"
	flagFastest     = "fastest"
	flagBaseline    = "baseline"
)

func writeText(w io.Writer, report analysis.Report, opts Options) error {
	term := opts.Terminal

	var sb strings.Builder

	sb.WriteString(terminal.DrawHeader(reportTitle, "n="+humanize.Comma(int64(report.InputSize)), term.Width))
	sb.WriteString("\n")

	writeField(&sb, "Profile", string(report.Profile))
	writeField(&sb, "Recommended", string(report.RecommendedAlgorithm))

	fastest, ok := report.Fastest()
	if !ok {
		sb.WriteString("\n" + term.Colorize("No algorithms were run.", terminal.ColorYellow) + "\n")

		return writeString(w, sb.String())
	}

	writeField(&sb, "Fastest", string(fastest.Algorithm))

	if report.Baseline != nil && report.Recommended != nil {
		writeField(&sb, "Improvement", fmt.Sprintf("%s vs %s",
			term.Colorize(formatPercent(report.ImprovementPercent), improvementColor(report.ImprovementPercent)),
			report.Baseline.Algorithm))
	}

	sb.WriteString("\n")
	sb.WriteString(resultsTable(report, fastest, term))
	sb.WriteString("\n\n")
	sb.WriteString(verdict(report, fastest, term))
	sb.WriteString("\n")

	if opts.ShowSorted && len(report.Results) > 0 {
		sb.WriteString("\n")
		writeField(&sb, "Sorted", preview(report.Results[0].Sorted))
	}

	return writeString(w, sb.String())
}

func resultsTable(report analysis.Report, fastest analysis.AlgorithmResult, term terminal.Config) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Algorithm", "Elapsed (ms)", "Mode", "Samples", "vs Baseline", "Relative", "Notes"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	var slowest float64
	for _, r := range report.Results {
		slowest = max(slowest, r.ElapsedMillis())
	}

	for _, r := range report.Results {
		name := string(r.Algorithm)
		if r.Recommended {
			name = term.Colorize(name, terminal.ColorBlue)
		}

		vsBaseline := "-"
		if report.Baseline != nil {
			vsBaseline = formatPercent(analysis.Improvement(report.Baseline, &r))
		}

		relative := 0.0
		if slowest > 0 {
			relative = r.ElapsedMillis() / slowest
		}

		tw.AppendRow(table.Row{
			name,
			strconv.FormatFloat(r.ElapsedMillis(), 'f', 3, 64),
			string(r.Mode),
			len(r.Samples),
			vsBaseline,
			terminal.DrawBar(relative, relativeBarLen),
			strings.Join(flags(report, r, fastest), ", "),
		})
	}

	return tw.Render()
}

func flags(report analysis.Report, r, fastest analysis.AlgorithmResult) []string {
	var out []string

	if r.Recommended {
		out = append(out, flagRecommended)
	}

	if r.Algorithm == fastest.Algorithm {
		out = append(out, flagFastest)
	}

	if report.Baseline != nil && r.Algorithm == report.Baseline.Algorithm {
		out = append(out, flagBaseline)
	}

	return out
}

func verdict(report analysis.Report, fastest analysis.AlgorithmResult, term terminal.Config) string {
	if report.RecommendationHit() {
		return term.Colorize(fmt.Sprintf("✓ %s was both recommended and fastest.", fastest.Algorithm), terminal.ColorGreen)
	}

	return term.Colorize(fmt.Sprintf("✗ %s was recommended, %s was fastest.",
		report.RecommendedAlgorithm, fastest.Algorithm), terminal.ColorYellow)
}

func writeResultText(w io.Writer, result analysis.AlgorithmResult, opts Options) error {
	term := opts.Terminal

	var sb strings.Builder

	sb.WriteString(term.Colorize(string(result.Algorithm), terminal.ColorBold))
	sb.WriteString("\n")

	writeField(&sb, "Elapsed", strconv.FormatFloat(result.ElapsedMillis(), 'f', 3, 64)+" ms")
	writeField(&sb, "Profile", string(result.Profile))
	writeField(&sb, "Recommended", strconv.FormatBool(result.Recommended))
	writeField(&sb, "Samples", strconv.Itoa(len(result.Samples)))

	if opts.ShowSorted {
		writeField(&sb, "Sorted", preview(result.Sorted))
	}

	return writeString(w, sb.String())
}

func writeField(sb *strings.Builder, label, value string) {
	sb.WriteString("  ")
	sb.WriteString(terminal.PadRight(label+":", labelWidth))
	sb.WriteString(value)
	sb.WriteString("\n")
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%+.1f%%", p)
}

func improvementColor(p float64) terminal.Color {
	if p < 0 {
		return terminal.ColorRed
	}

	return terminal.ColorGreen
}

// preview prints at most sortedPreview values.
func preview(data []int) string {
	parts := make([]string, 0, min(len(data), sortedPreview))
	for _, v := range data[:min(len(data), sortedPreview)] {
		parts = append(parts, strconv.Itoa(v))
	}

	out := "[" + strings.Join(parts, " ")
	if len(data) > sortedPreview {
		out += fmt.Sprintf(" … +%s more", humanize.Comma(int64(len(data)-sortedPreview)))
	}

	return out + "]"
}

func writeString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
