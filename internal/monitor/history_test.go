package monitor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceforge/skadimon/internal/projection"
)

func TestHistoryTableRows_Placeholder(t *testing.T) {
	rows, ids := historyTableRows(nil)

	require.Len(t, rows, 1)
	assert.Equal(t, projection.NoHistory, rows[0][0])
	assert.Len(t, rows[0], len(projection.HistoryColumns))
	assert.Empty(t, ids)
}

func TestHistoryTableRows(t *testing.T) {
	rows, ids := historyTableRows(projection.HistoryRows(sampleHistory("a", "b")))

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Equal(t, "a", rows[0][queryColumn])
}

func TestHistoryColumns_QueryColumnAbsorbsWidth(t *testing.T) {
	narrow := historyColumns(0)
	wide := historyColumns(200)

	assert.Equal(t, historyColumnWidths[queryColumn], narrow[queryColumn].Width)
	assert.Greater(t, wide[queryColumn].Width, narrow[queryColumn].Width)
	for i := range wide {
		if i != queryColumn {
			assert.Equal(t, narrow[i].Width, wide[i].Width)
		}
	}
}

func TestRebuildTable_KeepsSelectedQuery(t *testing.T) {
	f := newFakeEngine()
	f.store.SetHistory(sampleHistory("q1", "q2", "q3"))
	m := newTestModel(t, f)
	m, _ = press(m, runes("j"))
	require.Equal(t, "q2", m.selectedID)

	// A new query arrives at the top.
	f.store.SetHistory(sampleHistory("q0", "q1", "q2", "q3"))
	updated, _ := m.Update(stateMsg{})
	m = updated.(Model)

	assert.Equal(t, "q2", m.selectedID)
	assert.Equal(t, 2, m.table.Cursor())
}

func TestRebuildTable_SelectionGoneResetsToTop(t *testing.T) {
	f := newFakeEngine()
	f.store.SetHistory(sampleHistory("q1", "q2"))
	m := newTestModel(t, f)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnd})

	f.store.SetHistory(sampleHistory("q7"))
	updated, _ := m.Update(stateMsg{})
	m = updated.(Model)

	assert.Equal(t, "q7", m.selectedID)
}
