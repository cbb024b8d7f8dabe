package monitor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iceforge/skadimon/internal/projection"
	"github.com/iceforge/skadimon/internal/stream"
)

// kpiStripHeight is the rendered height of the KPI strip, borders included.
const kpiStripHeight = 4

// kpiCardWidth is the inner width of one KPI card.
func (m Model) kpiCardWidth() int {
	// Three cards, each with a border, padding and right margin.
	w := (m.contentWidth()-3*5)/3 - 1
	if w < 14 {
		w = 14
	}
	if w > 36 {
		w = 36
	}
	return w
}

// renderKPIStrip renders the three live KPI cards side by side.
func (m Model) renderKPIStrip() string {
	width := m.kpiCardWidth()
	fresh := m.freshness(stream.NameLive)

	var cards []string
	for _, kpi := range projection.KPIs(m.snap.Live) {
		value := KPIValueStyle.Render(kpi.Value)
		if fresh == projection.Waiting {
			value = LabelStyle.Render(projection.Missing)
		}
		body := lipgloss.JoinVertical(lipgloss.Left,
			LabelStyle.Render(kpi.Label),
			value,
		)
		cards = append(cards, CardStyle.Width(width).Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
