package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iceforge/skadimon/internal/api"
	"github.com/iceforge/skadimon/internal/projection"
)

// Detail view styles
var (
	detailContainerStyle = lipgloss.NewStyle().
				Padding(0, 1)

	detailSectionStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1).
				MarginBottom(1)

	detailLabelStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary).
				Width(12)

	detailValueStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary)

	detailLinkStyle = lipgloss.NewStyle().
			Foreground(ColorCached).
			Underline(true)

	detailSQLStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Padding(0, 1)
)

// renderDetailView renders the expanded single-query detail view.
func (m Model) renderDetailView() string {
	var b strings.Builder
	b.WriteString(m.renderDetailHeader())
	b.WriteString("\n\n")

	if m.viewportReady {
		b.WriteString(m.detailViewport.View())
	} else {
		b.WriteString(m.detailContent())
	}

	b.WriteString("\n")
	b.WriteString(m.renderDetailFooter())
	return detailContainerStyle.Render(b.String())
}

func (m Model) renderDetailHeader() string {
	title := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render("Query")
	id := m.selectedID
	if id == "" {
		id = projection.Missing
	}
	return HeaderStyle.Render(title + " " + ValueStyle.Render(id))
}

func (m Model) renderDetailFooter() string {
	return FooterStyle.Render("esc back | ↑↓ scroll | q quit")
}

// updateDetailViewportContent re-renders the detail body into the viewport.
func (m *Model) updateDetailViewportContent() {
	if !m.viewportReady {
		return
	}
	m.detailViewport.SetContent(m.detailContent())
}

// detailContent is the scrollable body of the detail view.
func (m Model) detailContent() string {
	q := m.SelectedQuery()
	width := m.contentWidth() - 6
	if width < 40 {
		width = 40
	}

	if q == nil {
		return detailSectionStyle.Width(width).Render(
			LabelStyle.Render("This query is no longer in the history."))
	}

	var b strings.Builder
	b.WriteString(detailSectionStyle.Width(width).Render(m.detailFields(*q)))
	b.WriteString("\n")

	sql := strings.TrimSpace(q.SQL)
	if sql == "" {
		sql = LabelStyle.Render("SQL not reported by the server.")
	} else {
		sql = detailSQLStyle.Width(width - 4).Render(sql)
	}
	b.WriteString(detailSectionStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, LabelStyle.Render("SQL"), sql)))
	return b.String()
}

func (m Model) detailFields(q api.QueryRow) string {
	cache := projection.CacheLabel(q.Cached)
	if q.CacheKind != "" {
		cache += " (" + q.CacheKind + ")"
	}

	status := lipgloss.NewStyle().Foreground(StatusColor(string(q.Status))).Render(string(q.Status))

	fields := []struct {
		label string
		value string
	}{
		{"Started", detailValueStyle.Render(projection.DateTime(q.StartedAt))},
		{"Status", status},
		{"Source", detailValueStyle.Render(string(q.Source))},
		{"Cache", detailValueStyle.Render(cache)},
		{"Duration", detailValueStyle.Render(projection.Duration(q.DurationMs))},
		{"Rows", detailValueStyle.Render(projection.RowCountLabel(q.RowCount))},
	}
	if m.baseURL != "" {
		fields = append(fields, struct {
			label string
			value string
		}{"Link", detailLinkStyle.Render(projection.QueryURL(m.baseURL, q.QueryID))})
	}

	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = detailLabelStyle.Render(f.label) + f.value
	}
	return strings.Join(lines, "\n")
}
