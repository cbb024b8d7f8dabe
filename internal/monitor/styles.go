package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iceforge/skadimon/internal/projection"
)

// Dashboard color palette - Gen Z Electric Synthwave
const (
	// Background colors (glassmorphism-inspired)
	ColorDarkBg    = lipgloss.Color("#0A0A0F") // Deep void
	ColorSurfaceBg = lipgloss.Color("#12121A") // Dark surface
	ColorBorder    = lipgloss.Color("#2A2A4A") // Glass border (purple tint)

	// Semantic colors - neon style
	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#FFFFFF") // Pure white
	ColorTextSecondary = lipgloss.Color("#B4B4D0") // Lavender gray
	ColorTextMuted     = lipgloss.Color("#6B6B8D") // Purple-gray

	// Accent colors - neon pink primary, purple secondary
	ColorAccent    = lipgloss.Color("#FF2E97") // Neon pink
	ColorAccentDim = lipgloss.Color("#BF40FF") // Neon purple

	// Chart lines
	ColorCached   = lipgloss.Color("#00FFFF") // Neon cyan
	ColorUncached = lipgloss.Color("#FF2E97") // Neon pink
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	// KPI card styles
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	// Text styles
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	KPIValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	ErrorCountStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)
)

// Freshness indicator characters
const (
	SymbolWaiting = "◌" // Dashed circle
	SymbolFresh   = "◉" // Filled target
	SymbolStale   = "◔" // Partially filled
)

// FreshnessColor returns the badge color for a stream's freshness.
func FreshnessColor(f projection.Freshness) lipgloss.Color {
	switch f {
	case projection.Fresh:
		return ColorHealthy
	case projection.Stale:
		return ColorWarning
	default:
		return ColorTextMuted
	}
}

// FreshnessSymbol returns the badge glyph for a stream's freshness.
func FreshnessSymbol(f projection.Freshness) string {
	switch f {
	case projection.Fresh:
		return SymbolFresh
	case projection.Stale:
		return SymbolStale
	default:
		return SymbolWaiting
	}
}

// StatusColor returns the color used for a query status cell.
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "OK":
		return ColorHealthy
	case "RUNNING":
		return ColorWarning
	case "FAILED":
		return ColorCritical
	default:
		return ColorTextSecondary
	}
}

// SectionHeader renders a section header with the title on the left and value on the right.
// Format: ╭─ Title ────────────────────────────────────── Value ╮
func SectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	// Calculate visible widths using lipgloss.Width for ANSI-aware measurement
	// Left: "╭─ " (3 chars) + title + " " (1 char)
	leftWidth := 3 + lipgloss.Width(title) + 1

	// Right: " " (1 char) + value + " ╮" (2 chars)
	rightWidth := 1 + lipgloss.Width(value) + 2

	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}
	middle := strings.Repeat("─", fillWidth)

	// Neon pink title, cyan value
	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	titleStyle := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(ColorCached).Bold(true)

	return borderStyle.Render("╭─ ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+middle+" ") +
		valueStyle.Render(value) +
		borderStyle.Render(" ╮")
}

// SectionFooter renders the bottom border of a section.
// Format: ╰────────────────────────────────────────────────────╯
func SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}

	middle := strings.Repeat("─", width-2)

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	return borderStyle.Render("╰" + middle + "╯")
}

// SectionContentLine renders a content line with left and right borders, properly padded to width.
// Format: │ content                                              │
func SectionContentLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)

	// Inner width is total width minus "│ " on the left and " │" on the right
	innerWidth := width - 4
	padding := innerWidth - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	return borderStyle.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + borderStyle.Render("│")
}
