package monitor

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/iceforge/skadimon/internal/projection"
)

// historyColumnWidths are the minimum widths of projection.HistoryColumns.
// The query id column absorbs any extra terminal width.
var historyColumnWidths = []int{16, 20, 6, 5, 10, 10, 7}

const queryColumn = 1

// defaultTableHeight is used before the first WindowSizeMsg.
const defaultTableHeight = 10

// historyColumns lays out the table columns for a terminal width.
func historyColumns(width int) []table.Column {
	cols := make([]table.Column, len(projection.HistoryColumns))
	used := 0
	for i, title := range projection.HistoryColumns {
		cols[i] = table.Column{Title: title, Width: historyColumnWidths[i]}
		// Each cell carries one column of padding on either side.
		used += historyColumnWidths[i] + 2
	}
	// Leave room for the section borders.
	if spare := width - used - 4; spare > 0 {
		cols[queryColumn].Width += spare
	}
	return cols
}

// newHistoryTable creates the history table with the dashboard palette.
func newHistoryTable() table.Model {
	t := table.New(
		table.WithColumns(historyColumns(0)),
		table.WithFocused(true),
		table.WithHeight(defaultTableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorAccent)
	s.Cell = s.Cell.
		Foreground(ColorTextPrimary)
	s.Selected = s.Selected.
		Foreground(ColorTextPrimary).
		Background(ColorAccentDim).
		Bold(false)

	t.SetStyles(s)
	return t
}

// historyTableRows converts formatted history rows into table rows. An empty
// history becomes a single placeholder row with no query behind it.
func historyTableRows(rows []projection.HistoryRow) ([]table.Row, []string) {
	if len(rows) == 0 {
		placeholder := make(table.Row, len(projection.HistoryColumns))
		placeholder[0] = projection.NoHistory
		return []table.Row{placeholder}, nil
	}

	out := make([]table.Row, len(rows))
	ids := make([]string, len(rows))
	for i, r := range rows {
		out[i] = table.Row(r.Cells)
		ids[i] = r.QueryID
	}
	return out, ids
}

// rebuildTable refreshes the table from the snapshot, keeping the cursor on
// the same query when it's still present.
func (m *Model) rebuildTable() {
	rows, ids := historyTableRows(projection.HistoryRows(m.snap.History))
	m.table.SetRows(rows)
	m.rowIDs = ids

	cursor := 0
	for i, id := range ids {
		if id == m.selectedID {
			cursor = i
			break
		}
	}
	m.table.SetCursor(cursor)
	m.syncSelection()
}

// syncSelection records which query the cursor is on.
func (m *Model) syncSelection() {
	c := m.table.Cursor()
	if c >= 0 && c < len(m.rowIDs) {
		m.selectedID = m.rowIDs[c]
		return
	}
	m.selectedID = ""
}

// tableHeight is how many lines the history table may use, header included.
func (m Model) tableHeight() int {
	if m.height == 0 {
		return defaultTableHeight
	}
	used := 2 + kpiStripHeight + 2
	if h := m.chartHeight(); h > 0 {
		used += h + chartChromeHeight
	}
	if m.ShowFooter() {
		used += 2
	}
	if h := m.height - used; h > 3 {
		return h
	}
	return 3
}
