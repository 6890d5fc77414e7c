package renderer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/sortbench/pkg/analysis"
	"github.com/Sumatoshi-tech/sortbench/pkg/plotpage"
)

const plotTitle = "Sorting algorithm analysis"

func writePlot(w io.Writer, report analysis.Report, opts Options) error {
	cOpts := plotpage.NewChartOpts(opts.Theme)
	theme := cOpts.Theme()

	page := plotpage.NewPage(plotTitle, fmt.Sprintf("%s values, %s profile, %s recommended",
		humanize.Comma(int64(report.InputSize)), report.Profile, report.RecommendedAlgorithm)).WithTheme(opts.Theme)

	page.Add(plotpage.Section{
		Title:    "Elapsed time",
		Subtitle: "Total run time per algorithm. The recommended algorithm is highlighted.",
		Chart:    elapsedChart(cOpts, report, theme),
	})

	if series := sampleSeries(report, theme); len(series) > 0 {
		labels := make([]string, longestSeries(series))
		for i := range labels {
			labels[i] = strconv.Itoa(i + 1)
		}

		page.Add(
			plotpage.Section{
				Title:    "Cumulative timing samples",
				Subtitle: "Elapsed time at each progress checkpoint of the sampled algorithms.",
				Chart:    plotpage.BuildLineChart(cOpts, labels, series, "ms"),
			},
			plotpage.Section{
				Title:    "Checkpoint intervals",
				Subtitle: "Time spent between consecutive checkpoints.",
				Chart:    plotpage.BuildScatterChart(cOpts, intervalSeries(series), "checkpoint", "ms"),
			},
		)
	}

	page.Add(plotpage.Section{Title: "Results", Chart: resultsHTMLTable(report)})

	return page.Render(w)
}

func elapsedChart(cOpts *plotpage.ChartOpts, report analysis.Report, theme plotpage.ThemeConfig) plotpage.Renderable {
	labels := make([]string, len(report.Results))
	values := make([]float64, len(report.Results))
	colors := make([]string, len(report.Results))

	for i, r := range report.Results {
		labels[i] = string(r.Algorithm)
		values[i] = r.ElapsedMillis()

		colors[i] = theme.Muted
		if r.Recommended {
			colors[i] = theme.Highlight
		}
	}

	return plotpage.BuildBarChart(cOpts, labels, []plotpage.BarSeries{
		{Name: "elapsed", Data: values, Colors: colors},
	}, "ms")
}

// sampleSeries returns one line per result that recorded more than a
// single sample.
func sampleSeries(report analysis.Report, theme plotpage.ThemeConfig) []plotpage.LineSeries {
	var series []plotpage.LineSeries

	for i, r := range report.Results {
		if len(r.Samples) < 2 {
			continue
		}

		series = append(series, plotpage.LineSeries{
			Name:  string(r.Algorithm),
			Data:  r.SampleMillis(),
			Color: theme.Series[i%len(theme.Series)],
		})
	}

	return series
}

func intervalSeries(lines []plotpage.LineSeries) []plotpage.ScatterSeries {
	out := make([]plotpage.ScatterSeries, len(lines))

	for i, line := range lines {
		points := make([][2]float64, len(line.Data))

		prev := 0.0
		for j, v := range line.Data {
			points[j] = [2]float64{float64(j + 1), v - prev}
			prev = v
		}

		out[i] = plotpage.ScatterSeries{Name: line.Name, Points: points, Color: line.Color}
	}

	return out
}

func longestSeries(series []plotpage.LineSeries) int {
	n := 0
	for _, s := range series {
		n = max(n, len(s.Data))
	}

	return n
}

func resultsHTMLTable(report analysis.Report) *plotpage.Table {
	tbl := &plotpage.Table{
		Headers:   []string{"Algorithm", "Elapsed (ms)", "Mode", "Samples", "vs Baseline"},
		Highlight: make(map[int]bool),
	}

	for i, r := range report.Results {
		vsBaseline := "-"
		if report.Baseline != nil {
			vsBaseline = formatPercent(analysis.Improvement(report.Baseline, &r))
		}

		tbl.Rows = append(tbl.Rows, []string{
			string(r.Algorithm),
			strconv.FormatFloat(r.ElapsedMillis(), 'f', 3, 64),
			string(r.Mode),
			strconv.Itoa(len(r.Samples)),
			vsBaseline,
		})

		if r.Recommended {
			tbl.Highlight[i] = true
		}
	}

	return tbl
}
