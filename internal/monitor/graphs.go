package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iceforge/skadimon/internal/projection"
)

// Braille character rendering for high-resolution terminal graphs.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '\u2800'

// brailleDots maps row/column to the bit offset for braille pattern
// [row][col] where row is 0-3 (top to bottom) and col is 0-1 (left to right)
var brailleDots = [4][2]uint8{
	{0, 3}, // Row 0: dots 1 and 4
	{1, 4}, // Row 1: dots 2 and 5
	{2, 5}, // Row 2: dots 3 and 6
	{6, 7}, // Row 3: dots 7 and 8
}

// normalizeValue converts a value to 0-1 range given min/max bounds.
func normalizeValue(val, minVal, maxVal float64) float64 {
	if maxVal > minVal {
		return (val - minVal) / (maxVal - minVal)
	}
	return 0.5
}

// clampInt clamps an integer to a range [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// brailleGrid is one series plotted onto a width x height character grid.
type brailleGrid [][]rune

func newBrailleGrid(width, height int) brailleGrid {
	g := make(brailleGrid, height)
	for i := range g {
		g[i] = make([]rune, width)
	}
	return g
}

// plot sets one dot. x is the sub-column (two per character) and level the
// dot height counted from the bottom.
func (g brailleGrid) plot(x, level int) {
	height := len(g)
	row := height - 1 - level/4
	if row < 0 || x/2 >= len(g[row]) {
		return
	}
	subRow := 3 - level%4
	g[row][x/2] |= rune(1 << brailleDots[subRow][x%2])
}

// RenderDurationChart plots cached and uncached durations on one braille
// grid and returns its lines, top first. Each data point is a single dot at
// its scaled height. Nil durations leave their column empty; nothing is
// interpolated across gaps. When there are more points than sub-columns the
// series is downsampled by taking the max of each bucket.
func RenderDurationChart(points []projection.ChartPoint, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}

	cached := make([]*float64, len(points))
	uncached := make([]*float64, len(points))
	for i, p := range points {
		cached[i] = p.CachedMs
		uncached[i] = p.UncachedMs
	}

	targetPoints := width * 2
	if len(points) > targetPoints {
		cached = downsample(cached, targetPoints)
		uncached = downsample(uncached, targetPoints)
	}

	maxVal := projection.MaxDuration(points)
	totalDots := height * 4

	// Right-align so the newest bucket sits at the right edge.
	offset := targetPoints - len(cached)
	if offset < 0 {
		offset = 0
	}

	plotSeries := func(values []*float64) brailleGrid {
		g := newBrailleGrid(width, height)
		for i, v := range values {
			if v == nil {
				continue
			}
			level := clampInt(int(normalizeValue(*v, 0, maxVal)*float64(totalDots-1)), totalDots-1)
			if maxVal == 0 {
				level = 0
			}
			g.plot(i+offset, level)
		}
		return g
	}
	cg := plotSeries(cached)
	ug := plotSeries(uncached)

	cachedStyle := lipgloss.NewStyle().Foreground(ColorCached).Background(ColorSurfaceBg)
	uncachedStyle := lipgloss.NewStyle().Foreground(ColorUncached).Background(ColorSurfaceBg)
	overlapStyle := lipgloss.NewStyle().Foreground(ColorTextPrimary).Background(ColorSurfaceBg)
	emptyStyle := lipgloss.NewStyle().Background(ColorSurfaceBg)

	lines := make([]string, height)
	for row := 0; row < height; row++ {
		var b strings.Builder
		for col := 0; col < width; col++ {
			c, u := cg[row][col], ug[row][col]
			char := string(brailleBase | c | u)
			switch {
			case c != 0 && u != 0:
				b.WriteString(overlapStyle.Render(char))
			case c != 0:
				b.WriteString(cachedStyle.Render(char))
			case u != 0:
				b.WriteString(uncachedStyle.Render(char))
			default:
				b.WriteString(emptyStyle.Render(char))
			}
		}
		lines[row] = b.String()
	}
	return lines
}

// downsample compresses values to targetSize buckets, keeping the max of
// each bucket so spikes survive. A bucket with no samples stays nil.
func downsample(values []*float64, targetSize int) []*float64 {
	if len(values) <= targetSize || targetSize <= 0 {
		return values
	}

	result := make([]*float64, targetSize)
	bucketSize := float64(len(values)) / float64(targetSize)
	for i := 0; i < targetSize; i++ {
		start := int(float64(i) * bucketSize)
		end := int(float64(i+1) * bucketSize)
		if end > len(values) {
			end = len(values)
		}
		if start >= end {
			start = end - 1
		}

		var maxVal *float64
		for _, v := range values[start:end] {
			if v != nil && (maxVal == nil || *v > *maxVal) {
				maxVal = v
			}
		}
		result[i] = maxVal
	}
	return result
}

// ChartLegend names the two lines in their plot colors.
func ChartLegend() string {
	return lipgloss.NewStyle().Foreground(ColorCached).Render("⣿ cached") +
		"  " +
		lipgloss.NewStyle().Foreground(ColorUncached).Render("⣿ uncached")
}

// chartAxis spreads the first and last point labels across width.
func chartAxis(points []projection.ChartPoint, width int) string {
	if len(points) == 0 {
		return ""
	}
	first := points[0].Label
	last := points[len(points)-1].Label
	if len(points) == 1 || width < len(first)+len(last)+1 {
		return LabelStyle.Render(last)
	}
	gap := width - lipgloss.Width(first) - lipgloss.Width(last)
	return LabelStyle.Render(first + strings.Repeat(" ", gap) + last)
}
