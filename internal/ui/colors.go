package ui

import "github.com/charmbracelet/lipgloss"

// Palette for one-shot CLI output, in ANSI codes so it degrades cleanly on
// 16-color terminals. The dashboard has its own palette in package monitor.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Series colors, matching the dashboard chart legend.
const (
	ColorCached   lipgloss.Color = "6" // Cyan
	ColorUncached lipgloss.Color = "5" // Magenta
)
