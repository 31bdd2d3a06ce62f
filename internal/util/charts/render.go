package charts

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/stollenaar/analyticsbot/internal/analytics"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	FileName = "analytics_chart.png"

	chartWidth  = 1000
	chartHeight = 600
	// Keeps rotated date labels readable on 3 month windows.
	maxXLabels = 15
)

var (
	caser = cases.Title(language.AmericanEnglish, cases.NoLower)

	lineColor = drawing.ColorFromHex("1f77b4")
	gridColor = drawing.ColorFromHex("c8c8c8")
)

// Title builds the chart title for a website and window.
func Title(website string, r analytics.DateRange) string {
	return fmt.Sprintf("%s (%s)", caser.String(website+" page views"), r.Label())
}

// RenderLineChart plots views per date as a PNG. Samples are drawn in the
// order given. An empty slice renders empty axes.
func RenderLineChart(title string, samples []analytics.DailySample) (image []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			image, err = nil, analytics.NewError(analytics.RenderError, "rendering chart: %v", r)
		}
	}()

	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 30, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			Ticks:          dateTicks(samples),
			Range:          xRange(samples),
			ValueFormatter: func(any) string { return "" },
			TickStyle:      chart.Style{TextRotationDegrees: 45.0},
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           "Page Views",
			Range:          &chart.ContinuousRange{Min: 0, Max: yMax(samples)},
			ValueFormatter: integerFormatter,
			GridMajorStyle: gridStyle(),
		},
		Series: []chart.Series{lineSeries(samples)},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, analytics.NewError(analytics.RenderError, "rendering chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func lineSeries(samples []analytics.DailySample) chart.ContinuousSeries {
	series := chart.ContinuousSeries{
		Name: "Page Views",
		Style: chart.Style{
			StrokeColor: lineColor,
			StrokeWidth: 2.0,
			DotColor:    lineColor,
			DotWidth:    4.0,
		},
	}
	if len(samples) == 0 {
		// go-chart needs one point to lay out the axes.
		series.XValues = []float64{0}
		series.YValues = []float64{0}
		series.Style = chart.Style{
			StrokeColor: drawing.ColorTransparent,
			DotColor:    drawing.ColorTransparent,
		}
		return series
	}
	for i, s := range samples {
		series.XValues = append(series.XValues, float64(i))
		series.YValues = append(series.YValues, float64(s.Views))
	}
	return series
}

// xRange is only needed without samples; otherwise the ticks span the axis.
func xRange(samples []analytics.DailySample) chart.Range {
	if len(samples) > 0 {
		return nil
	}
	return &chart.ContinuousRange{Min: 0, Max: 1}
}

// dateTicks places one tick per sample, labelling at most maxXLabels of them.
func dateTicks(samples []analytics.DailySample) []chart.Tick {
	if len(samples) == 0 {
		return nil
	}
	stride := int(math.Ceil(float64(len(samples)) / maxXLabels))
	ticks := make([]chart.Tick, 0, len(samples)+2)
	for i, s := range samples {
		tick := chart.Tick{Value: float64(i)}
		if i%stride == 0 {
			tick.Label = DateLabel(s.Date)
		}
		ticks = append(ticks, tick)
	}
	if len(samples) == 1 {
		ticks = append([]chart.Tick{{Value: -1}}, append(ticks, chart.Tick{Value: 1})...)
	}
	return ticks
}

// DateLabel turns the reporting API's YYYYMMDD into YYYY-MM-DD and leaves
// anything else alone.
func DateLabel(date string) string {
	if t, err := time.Parse("20060102", date); err == nil {
		return t.Format("2006-01-02")
	}
	return date
}

func yMax(samples []analytics.DailySample) float64 {
	var peak int64
	for _, s := range samples {
		if s.Views > peak {
			peak = s.Views
		}
	}
	if peak == 0 {
		return 1
	}
	return math.Ceil(float64(peak) * 1.1)
}

func integerFormatter(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%d", int64(f))
	}
	return ""
}

func gridStyle() chart.Style {
	return chart.Style{
		StrokeColor:     gridColor,
		StrokeWidth:     1.0,
		StrokeDashArray: []float64{5.0, 5.0},
	}
}
