package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iceforge/skadimon/internal/api"
	"github.com/iceforge/skadimon/internal/stream"
	"github.com/iceforge/skadimon/internal/viewstate"
)

// LayoutMode represents the responsive layout mode based on terminal size.
type LayoutMode int

const (
	// LayoutMinimal is for terminals < 80 columns: KPIs and history only, no chart
	LayoutMinimal LayoutMode = iota
	// LayoutCompact is for terminals 80-120 columns: short chart, narrow columns
	LayoutCompact
	// LayoutStandard is for terminals 120-160 columns
	LayoutStandard
	// LayoutWide is for terminals 160+ columns: taller chart, wide query column
	LayoutWide
)

// Width breakpoints for layout modes
const (
	BreakpointCompact  = 80
	BreakpointStandard = 120
	BreakpointWide     = 160
)

// Height breakpoints for layout adjustments
const (
	HeightMinimal  = 24
	HeightStandard = 40
)

// clockInterval is how often ages and staleness badges are recomputed.
const clockInterval = time.Second

// Engine is what the dashboard needs from the polling engine.
type Engine interface {
	Store() *viewstate.Store
	Stats() *stream.Stats
	SetWindow(w api.Window) bool
	CycleWindow() api.Window
	Cadences() map[string]time.Duration
}

// Options tunes the dashboard.
type Options struct {
	// BaseURL is used to build per-query links in the detail view.
	BaseURL string
	// MissedTicks is how many cadences may pass without a successful poll
	// before a stream is shown as stale.
	MissedTicks int
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Model is the Bubble Tea model for the monitoring dashboard.
type Model struct {
	engine      Engine
	store       *viewstate.Store
	baseURL     string
	missedTicks int
	cadences    map[string]time.Duration
	clock       func() time.Time

	snap  viewstate.ViewState
	stats map[string]stream.StreamStats
	now   time.Time

	width    int
	height   int
	quitting bool
	viewMode ViewMode
	showHelp bool

	// History table and the query ids behind its rows
	table      table.Model
	rowIDs     []string
	selectedID string

	// Detail view viewport for scrollable content
	detailViewport viewport.Model
	viewportReady  bool
}

// tickMsg signals a clock refresh.
type tickMsg time.Time

// stateMsg signals that the view state changed.
type stateMsg struct{}

// NewModel creates a dashboard model reading from engine.
func NewModel(engine Engine, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MissedTicks < 1 {
		opts.MissedTicks = 3
	}

	m := Model{
		engine:      engine,
		store:       engine.Store(),
		baseURL:     opts.BaseURL,
		missedTicks: opts.MissedTicks,
		cadences:    engine.Cadences(),
		clock:       opts.Now,
		table:       newHistoryTable(),
	}
	m.now = m.clock()
	m.refresh()
	return m
}

// Init starts the clock and begins waiting for state changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.waitCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tickMsg:
		m.now = time.Time(msg)
		m.refreshStats()
		return m, m.tickCmd()

	case stateMsg:
		m.refresh()
		return m, m.waitCmd()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	if m.viewMode == ViewDetail {
		return m.renderDetailView()
	}
	return m.renderDashboard()
}

// tickCmd returns a command that sends a tick after the clock interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitCmd returns a command that blocks until the store signals a change.
func (m Model) waitCmd() tea.Cmd {
	changes := m.store.Changes()
	return func() tea.Msg {
		<-changes
		return stateMsg{}
	}
}

// refresh re-reads the snapshot and rebuilds everything derived from it.
func (m *Model) refresh() {
	m.snap = m.store.Snapshot()
	m.refreshStats()
	m.rebuildTable()
	if m.viewMode == ViewDetail {
		m.updateDetailViewportContent()
	}
}

func (m *Model) refreshStats() {
	stats := m.engine.Stats()
	m.stats = make(map[string]stream.StreamStats, 3)
	for _, name := range []string{stream.NameLive, stream.NameSeries, stream.NameHistory} {
		m.stats[name] = stats.Stream(name)
	}
}

// resize fits the table and viewport to the terminal.
func (m *Model) resize() {
	m.table.SetColumns(historyColumns(m.width))
	m.table.SetHeight(m.tableHeight())

	// Reserve space for header and footer
	headerHeight := 3
	footerHeight := 2
	viewportHeight := m.height - headerHeight - footerHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !m.viewportReady {
		m.detailViewport = viewport.New(m.width, viewportHeight)
		m.detailViewport.YPosition = headerHeight
		m.viewportReady = true
	} else {
		m.detailViewport.Width = m.width
		m.detailViewport.Height = viewportHeight
	}

	if m.viewMode == ViewDetail {
		m.updateDetailViewportContent()
	}
}

// Snapshot returns the view state the model last rendered from.
func (m Model) Snapshot() viewstate.ViewState {
	return m.snap
}

// SelectedQuery returns the highlighted history row, or nil when the history
// is empty.
func (m Model) SelectedQuery() *api.QueryRow {
	if m.selectedID == "" {
		return nil
	}
	for i := range m.snap.History {
		if m.snap.History[i].QueryID == m.selectedID {
			return &m.snap.History[i]
		}
	}
	return nil
}

// LayoutMode returns the current layout mode based on terminal width.
func (m Model) LayoutMode() LayoutMode {
	switch {
	case m.width >= BreakpointWide:
		return LayoutWide
	case m.width >= BreakpointStandard:
		return LayoutStandard
	case m.width >= BreakpointCompact:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}

// ShowFooter returns true if the terminal is tall enough to show the footer.
func (m Model) ShowFooter() bool {
	return m.height >= HeightMinimal
}

// CanShowExtendedInfo returns true if the terminal is tall enough for extra details.
func (m Model) CanShowExtendedInfo() bool {
	return m.height >= HeightStandard
}
