package charts

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stollenaar/analyticsbot/internal/analytics"
)

// RenderPreviewPage writes an interactive HTML version of the line chart.
func RenderPreviewPage(w io.Writer, title string, samples []analytics.DailySample) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#FFFFFF",
			PageTitle:       title,
		}),
		charts.WithAnimation(false),
		charts.WithTitleOpts(opts.Title{
			Title: title,
			Right: "40%",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "Page Views",
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	line.SetXAxis(toXaxes(samples)).
		AddSeries("Page Views", genLineData(samples)).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{
				ShowSymbol: opts.Bool(true),
			}),
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(true),
			}),
		)
	return line.Render(w)
}

func toXaxes(samples []analytics.DailySample) []string {
	rs := make([]string, 0, len(samples))
	for _, s := range samples {
		rs = append(rs, DateLabel(s.Date))
	}
	return rs
}

func genLineData(samples []analytics.DailySample) []opts.LineData {
	rs := make([]opts.LineData, 0, len(samples))
	for _, s := range samples {
		rs = append(rs, opts.LineData{Value: s.Views})
	}
	return rs
}
