package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

// sparklineBlockRunes provides indexed access to block characters.
var sparklineBlockRunes = []rune(sparklineBlocks)

// sparklineGap is drawn for a bucket with no samples.
const sparklineGap = ' '

// RenderSparkline renders one block per value, keeping the most recent
// width values. Levels are scaled from zero to the largest value shown, so
// equal durations look equal across series. A nil value is a gap: it's left
// blank and never interpolated.
func RenderSparkline(data []*float64, width int, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	// Use only the most recent 'width' data points
	if len(data) > width {
		data = data[len(data)-width:]
	}

	var peak float64
	for _, v := range data {
		if v != nil && *v > peak {
			peak = *v
		}
	}

	var sb strings.Builder
	sb.Grow(len(data) * 3)

	numLevels := len(sparklineBlockRunes)
	for _, v := range data {
		if v == nil {
			sb.WriteRune(sparklineGap)
			continue
		}
		sb.WriteRune(sparklineBlockRunes[sparklineLevel(*v, peak, numLevels)])
	}

	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}

// sparklineLevel maps v onto 0..levels-1 relative to peak.
func sparklineLevel(v, peak float64, levels int) int {
	if peak <= 0 || v <= 0 {
		return 0
	}
	level := int(v / peak * float64(levels-1))
	if level < 0 {
		return 0
	}
	if level >= levels {
		return levels - 1
	}
	return level
}
