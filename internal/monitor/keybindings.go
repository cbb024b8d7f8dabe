package monitor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iceforge/skadimon/internal/api"
)

// ViewMode defines the current display mode of the dashboard.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
)

// Key bindings as constants for consistency.
const (
	KeyQuit        = "q"
	KeyQuitAlt     = "ctrl+c"
	KeyCycleWindow = "w"
	KeySelectPrev  = "up"
	KeySelectPrevK = "k"
	KeySelectNext  = "down"
	KeySelectNextJ = "j"
	KeySelectFirst = "home"
	KeySelectLast  = "end"
	KeyExpand      = "enter"
	KeyCollapse    = "esc"
	KeyToggleHelp  = "?"
)

// windowKeys maps the number keys to windows in display order.
var windowKeys = map[string]api.Window{
	"1": api.Window15m,
	"2": api.Window1h,
	"3": api.Window6h,
	"4": api.Window24h,
}

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	// If help is showing, Esc closes it
	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	// Detail view: Esc returns to list, arrows scroll the viewport
	if m.viewMode == ViewDetail {
		switch key {
		case KeyCollapse:
			m.viewMode = ViewList
			return true, nil
		case KeySelectPrev, KeySelectPrevK:
			m.detailViewport.ScrollUp(1)
			return true, nil
		case KeySelectNext, KeySelectNextJ:
			m.detailViewport.ScrollDown(1)
			return true, nil
		}
	}

	if w, ok := windowKeys[key]; ok {
		m.selectWindow(w)
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyCycleWindow:
		m.engine.CycleWindow()
		m.refresh()
		return true, nil

	case KeySelectPrev, KeySelectPrevK:
		m.table.MoveUp(1)
		m.syncSelection()
		return true, nil

	case KeySelectNext, KeySelectNextJ:
		m.table.MoveDown(1)
		m.syncSelection()
		return true, nil

	case KeySelectFirst:
		m.table.GotoTop()
		m.syncSelection()
		return true, nil

	case KeySelectLast:
		m.table.GotoBottom()
		m.syncSelection()
		return true, nil

	case KeyExpand:
		if m.viewMode == ViewList && m.SelectedQuery() != nil {
			m.viewMode = ViewDetail
			m.updateDetailViewportContent()
			m.detailViewport.GotoTop()
		}
		return true, nil

	case KeyCollapse:
		m.viewMode = ViewList
		return true, nil
	}

	return false, nil
}

func (m *Model) selectWindow(w api.Window) {
	if m.engine.SetWindow(w) {
		m.refresh()
	}
}
