package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Version string // Version string (e.g., "v0.4.0")
	BaseURL string // Node being polled
	Window  string // Optional window label (e.g., "Last 1h")
}

// HeaderWidth is the default width of the header divider
const HeaderWidth = 50

// RenderHeader renders the title block printed above a snapshot.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorInfo).
		Bold(true)
	versionStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	dividerStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var output strings.Builder

	// Title line: "skadimon v0.5.0"
	output.WriteString(titleStyle.Render("skadimon"))
	if info.Version != "" {
		output.WriteString(" ")
		output.WriteString(versionStyle.Render(info.Version))
	}
	output.WriteString("\n")

	if info.BaseURL != "" {
		line := info.BaseURL
		if info.Window != "" {
			line += "  ·  " + info.Window
		}
		output.WriteString(lipgloss.NewStyle().Foreground(ColorSecondary).Render(line))
		output.WriteString("\n")
	}

	output.WriteString(dividerStyle.Render(strings.Repeat("━", HeaderWidth)))
	output.WriteString("\n")

	return output.String()
}
