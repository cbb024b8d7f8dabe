// Package monitor implements the terminal dashboard for a Skadi cluster.
//
// The dashboard shows live concurrency KPIs, a chart of cached vs uncached
// query durations over the selected time window, and a scrollable history of
// recent queries. All data comes from a polling engine that writes into a
// view state store; this package only reads snapshots and renders them.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: Holds the latest snapshot, table selection and layout state
//   - Update: Processes messages (keystrokes, clock ticks, state changes)
//   - View: Renders the current state to a string for display
//
// # Message Flow
//
//  1. waitCmd blocks on the store's change channel
//  2. stateMsg arrives, the model re-reads the snapshot and waits again
//  3. tickMsg fires once a second so ages and staleness badges stay current
//  4. View() re-renders the dashboard
//
// Poll failures never reach the snapshot. They show up only as counters in
// the footer, read from the engine's stats.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	w           - Cycle time window
//	1-4         - Select 15m / 1h / 6h / 24h
//	j/k, ↑/↓    - Move through query history
//	Home/End    - First / last query
//	Enter       - Show query detail
//	Esc         - Back / close
//	?           - Toggle help overlay
package monitor
