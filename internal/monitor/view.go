package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iceforge/skadimon/internal/projection"
	"github.com/iceforge/skadimon/internal/stream"
	"github.com/iceforge/skadimon/internal/util"
)

// chartChromeHeight counts the chart section's header, axis, legend and
// footer lines.
const chartChromeHeight = 4

// defaultWidth is used before the first WindowSizeMsg.
const defaultWidth = 100

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderKPIStrip())
	b.WriteString("\n")

	if m.chartHeight() > 0 {
		b.WriteString(m.renderChart())
		b.WriteString("\n")
	}

	b.WriteString(m.renderHistory())

	if m.ShowFooter() || m.height == 0 {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	return b.String()
}

// contentWidth is the width every section is drawn at.
func (m Model) contentWidth() int {
	if m.width == 0 {
		return defaultWidth
	}
	return m.width
}

// chartHeight is the number of braille rows in the chart, 0 to hide it.
func (m Model) chartHeight() int {
	if m.width > 0 && m.LayoutMode() == LayoutMinimal {
		return 0
	}
	if m.height > 0 && !m.ShowFooter() {
		return 3
	}

	h := 6
	switch m.LayoutMode() {
	case LayoutCompact:
		h = 4
	case LayoutWide:
		h = 8
	}
	if m.CanShowExtendedInfo() {
		h += 2
	}
	return h
}

// freshness classifies a stream from its last success time.
func (m Model) freshness(name string) projection.Freshness {
	at := m.snap.LiveAt
	switch name {
	case stream.NameSeries:
		at = m.snap.SeriesAt
	case stream.NameHistory:
		at = m.snap.HistoryAt
	}
	return projection.FreshnessOf(at, m.cadences[name], m.missedTicks, m.now)
}

// renderHeader renders the title, selected window, update time and one
// freshness badge per stream.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("skadimon")

	info := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(fmt.Sprintf(" | %s | updated %s | ", m.snap.Window.Label(), projection.Updated(m.snap.Live)))

	return HeaderStyle.Render(title + info + m.renderBadges())
}

func (m Model) renderBadges() string {
	var badges []string
	for _, name := range []string{stream.NameLive, stream.NameSeries, stream.NameHistory} {
		f := m.freshness(name)
		badge := lipgloss.NewStyle().Foreground(FreshnessColor(f)).Render(FreshnessSymbol(f))
		badges = append(badges, badge+" "+name)
	}
	return strings.Join(badges, "  ")
}

// renderChart renders the duration chart section.
func (m Model) renderChart() string {
	width := m.contentWidth()
	innerWidth := width - 4
	points := projection.ChartPoints(m.snap.Series)

	peak := ""
	if len(points) > 0 {
		top := projection.MaxDuration(points)
		peak = "peak " + projection.Duration(&top)
	}

	var lines []string
	lines = append(lines, SectionHeader("Query duration · "+m.snap.Window.Label(), peak, width))

	height := m.chartHeight()
	if len(points) == 0 {
		msg := "Waiting for samples..."
		if !m.snap.SeriesAt.IsZero() {
			msg = "No samples in this window."
		}
		lines = append(lines, SectionContentLine(LabelStyle.Render(msg), width))
		for i := 1; i < height; i++ {
			lines = append(lines, SectionContentLine("", width))
		}
		lines = append(lines, SectionContentLine("", width))
	} else {
		for _, l := range RenderDurationChart(points, innerWidth, height) {
			lines = append(lines, SectionContentLine(l, width))
		}
		lines = append(lines, SectionContentLine(chartAxis(points, innerWidth), width))
	}

	lines = append(lines, SectionContentLine(ChartLegend(), width))
	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderHistory renders the query history section.
func (m Model) renderHistory() string {
	width := m.contentWidth()
	n := len(m.snap.History)
	count := fmt.Sprintf("%d %s", n, util.Pluralize(n, "query", "queries"))

	var lines []string
	lines = append(lines, SectionHeader("Query history", count, width))
	for _, l := range strings.Split(m.table.View(), "\n") {
		lines = append(lines, SectionContentLine(l, width))
	}
	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderFooter renders the keyboard hints and poll failure counters.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"w window",
		"↑↓ select",
		"enter detail",
		"? help",
	}
	footer := FooterStyle.Render(strings.Join(hints, " | "))

	if failures := m.renderFailures(); failures != "" {
		footer += FooterStyle.Render("|") + failures
	}
	return footer
}

// renderFailures lists streams that have failed at least once. Failures
// are otherwise invisible, since the last good data stays on screen.
func (m Model) renderFailures() string {
	var parts []string
	for _, name := range []string{stream.NameLive, stream.NameSeries, stream.NameHistory} {
		st := m.stats[name]
		if n := st.TotalFailures(); n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", name, n))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return ErrorCountStyle.Render(" failures: " + strings.Join(parts, ", "))
}
