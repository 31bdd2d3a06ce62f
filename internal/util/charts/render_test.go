package charts

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"
	"testing"

	"github.com/stollenaar/analyticsbot/internal/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n")

func TestRenderLineChart(t *testing.T) {
	image, err := RenderLineChart("Leaderboard", []analytics.DailySample{
		{Date: "20240501", Views: 10},
		{Date: "20240502", Views: 15},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(image, pngHeader))

	decoded, err := png.Decode(bytes.NewReader(image))
	require.NoError(t, err)
	assert.Equal(t, chartWidth, decoded.Bounds().Dx())
	assert.Equal(t, chartHeight, decoded.Bounds().Dy())
}

func TestRenderLineChart_Empty(t *testing.T) {
	image, err := RenderLineChart("Leaderboard", nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(image, pngHeader))
}

func TestRenderLineChart_Degenerate(t *testing.T) {
	single, err := RenderLineChart("one", []analytics.DailySample{{Date: "20240501", Views: 3}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(single, pngHeader))

	zeros, err := RenderLineChart("zeros", []analytics.DailySample{{Date: "20240501"}, {Date: "20240502"}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(zeros, pngHeader))
}

func TestRenderLineChart_Deterministic(t *testing.T) {
	samples := []analytics.DailySample{{Date: "20240501", Views: 1}, {Date: "20240502", Views: 4}}
	first, err := RenderLineChart("same", samples)
	require.NoError(t, err)
	second, err := RenderLineChart("same", samples)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDateTicks(t *testing.T) {
	var samples []analytics.DailySample
	for i := 0; i < 90; i++ {
		samples = append(samples, analytics.DailySample{Date: fmt.Sprintf("d%02d", i)})
	}
	ticks := dateTicks(samples)
	require.Len(t, ticks, 90)

	labelled := 0
	for i, tick := range ticks {
		assert.Equal(t, float64(i), tick.Value)
		if tick.Label != "" {
			labelled++
		}
	}
	assert.LessOrEqual(t, labelled, maxXLabels)
	assert.Equal(t, "d00", ticks[0].Label)

	assert.Len(t, dateTicks(samples[:1]), 3)
	assert.Nil(t, dateTicks(nil))
}

func TestDateLabel(t *testing.T) {
	assert.Equal(t, "2024-05-01", DateLabel("20240501"))
	assert.Equal(t, "2024-05-01", DateLabel("2024-05-01"))
	assert.Equal(t, "(other)", DateLabel("(other)"))
}

func TestTitle(t *testing.T) {
	r, err := analytics.ParseDuration("7")
	require.NoError(t, err)
	assert.Equal(t, "GambleAssist Page Views (7 day(s))", Title("GambleAssist", r))
}

func TestRenderPreviewPage(t *testing.T) {
	var out strings.Builder
	err := RenderPreviewPage(&out, "Leaderboard", []analytics.DailySample{{Date: "20240501", Views: 10}})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "2024-05-01")
	assert.Contains(t, out.String(), "Page Views")
}
