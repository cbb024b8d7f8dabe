package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Last poll succeeded
	SymbolFail    = "✗" // Last poll failed
	SymbolPending = "○" // Not polled yet
	SymbolRunning = "◐" // Query still running
)
