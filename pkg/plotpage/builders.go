package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth  = "100%"
	chartHeight = "420px"
)

// BarSeries is one bar series. Colors, when set, apply per data point.
type BarSeries struct {
	Name   string
	Data   []float64
	Colors []string
}

// LineSeries is one line series.
type LineSeries struct {
	Name  string
	Data  []float64
	Color string
}

// ScatterSeries is one scatter series of (x, y) points.
type ScatterSeries struct {
	Name   string
	Points [][2]float64
	Color  string
}

// BuildBarChart constructs a themed bar chart. A nil cOpts uses the defaults.
func BuildBarChart(cOpts *ChartOpts, labels []string, series []BarSeries, yAxisLabel string) *charts.Bar {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(chartWidth, chartHeight)),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithXAxisOpts(cOpts.XAxis("")),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	bar.SetXAxis(labels)

	for _, s := range series {
		barData := make([]opts.BarData, len(s.Data))

		for i, v := range s.Data {
			barData[i] = opts.BarData{Value: v}

			if i < len(s.Colors) && s.Colors[i] != "" {
				barData[i].ItemStyle = &opts.ItemStyle{Color: s.Colors[i]}
			}
		}

		bar.AddSeries(s.Name, barData)
	}

	return bar
}

// BuildLineChart constructs a themed line chart. A nil cOpts uses the defaults.
func BuildLineChart(cOpts *ChartOpts, labels []string, series []LineSeries, yAxisLabel string) *charts.Line {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(chartWidth, chartHeight)),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithDataZoomOpts(cOpts.DataZoom()...),
		charts.WithXAxisOpts(cOpts.XAxis("sample")),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	line.SetXAxis(labels)

	for _, s := range series {
		lineData := make([]opts.LineData, len(s.Data))
		for i, v := range s.Data {
			lineData[i] = opts.LineData{Value: v}
		}

		var seriesOpts []charts.SeriesOpts
		if s.Color != "" {
			seriesOpts = append(seriesOpts,
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}),
			)
		}

		line.AddSeries(s.Name, lineData, seriesOpts...)
	}

	return line
}

// BuildScatterChart constructs a themed scatter chart with numeric axes.
// A nil cOpts uses the defaults.
func BuildScatterChart(cOpts *ChartOpts, series []ScatterSeries, xAxisLabel, yAxisLabel string) *charts.Scatter {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(chartWidth, chartHeight)),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithXAxisOpts(cOpts.ValueXAxis(xAxisLabel)),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	for _, s := range series {
		points := make([]opts.ScatterData, len(s.Points))
		for i, p := range s.Points {
			points[i] = opts.ScatterData{Value: []float64{p[0], p[1]}}
		}

		var seriesOpts []charts.SeriesOpts
		if s.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}

		scatter.AddSeries(s.Name, points, seriesOpts...)
	}

	return scatter
}
