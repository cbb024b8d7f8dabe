package monitor

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceforge/skadimon/internal/projection"
)

// dots counts the raised braille dots in rendered chart lines.
func dots(lines []string) int {
	n := 0
	for _, l := range lines {
		for _, r := range l {
			if r > brailleBase && r <= brailleBase+0xFF {
				for b := r - brailleBase; b != 0; b &= b - 1 {
					n++
				}
			}
		}
	}
	return n
}

func TestRenderDurationChart_Empty(t *testing.T) {
	assert.Nil(t, RenderDurationChart(nil, 0, 4))
	assert.Nil(t, RenderDurationChart(nil, 10, 0))

	lines := RenderDurationChart(nil, 10, 2)
	require.Len(t, lines, 2)
	assert.Equal(t, 0, dots(lines))
}

func TestRenderDurationChart_OneDotPerSample(t *testing.T) {
	points := []projection.ChartPoint{
		{CachedMs: ms(120)},
		{UncachedMs: ms(900)},
		{CachedMs: ms(50), UncachedMs: ms(600)},
	}

	lines := RenderDurationChart(points, 10, 3)

	require.Len(t, lines, 3)
	assert.Equal(t, 4, dots(lines))
}

func TestRenderDurationChart_NilBucketsStayBlank(t *testing.T) {
	points := []projection.ChartPoint{
		{CachedMs: ms(100)},
		{},
		{},
		{CachedMs: ms(100)},
	}

	// Two characters wide: four sub-columns, one per point.
	lines := RenderDurationChart(points, 2, 1)
	require.Len(t, lines, 1)

	cells := []rune(lines[0])
	require.Len(t, cells, 2)
	// Each character has exactly one raised dot: no line drawn across the gap.
	assert.Equal(t, 1, dots([]string{string(cells[0])}))
	assert.Equal(t, 1, dots([]string{string(cells[1])}))
}

func TestRenderDurationChart_PeakAtTop(t *testing.T) {
	points := []projection.ChartPoint{{UncachedMs: ms(0)}, {UncachedMs: ms(900)}}

	lines := RenderDurationChart(points, 1, 2)

	require.Len(t, lines, 2)
	assert.Equal(t, 1, dots(lines[:1]), "max value lands on the top row")
	assert.Equal(t, 1, dots(lines[1:]), "zero lands on the bottom row")
}

func TestDownsample_KeepsMaxAndGaps(t *testing.T) {
	values := []*float64{ms(1), ms(5), nil, nil, ms(3), nil}

	got := downsample(values, 3)

	require.Len(t, got, 3)
	assert.Equal(t, 5.0, *got[0])
	assert.Nil(t, got[1])
	assert.Equal(t, 3.0, *got[2])
}

func TestDownsample_NoopWhenSmall(t *testing.T) {
	values := []*float64{ms(1), nil}
	assert.Equal(t, values, downsample(values, 4))
}

func TestChartAxis(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	points := projection.ChartPoints(nil)
	assert.Empty(t, chartAxis(points, 20))

	points = []projection.ChartPoint{{Label: "10:00", Timestamp: t1}, {Label: "11:00"}}
	axis := chartAxis(points, 20)
	assert.True(t, strings.HasPrefix(axis, "10:00"))
	assert.True(t, strings.HasSuffix(axis, "11:00"))
	assert.Len(t, axis, 20)
}

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, 0.5, normalizeValue(5, 0, 10))
	assert.Equal(t, 0.5, normalizeValue(5, 10, 10))
	assert.Equal(t, 0, clampInt(-1, 5))
	assert.Equal(t, 5, clampInt(9, 5))
}
