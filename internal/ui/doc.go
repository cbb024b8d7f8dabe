// Package ui renders skadimon's non-interactive terminal output: the
// snapshot header, plain tables and duration sparklines.
//
// Everything here returns strings styled with Lip Gloss. Colors follow the
// active lipgloss profile, so --no-color (termenv.Ascii) strips them.
//
// # Components Overview
//
//	RenderHeader       - Title line with version and node URL
//	RenderSimpleTable  - Static bubbles/table rendering for CLI output
//	RenderStreamTable  - Per-endpoint poll outcome of a snapshot
//	RenderSparkline    - One-line duration chart with gaps for empty buckets
//
// # Color Scheme
//
//	ColorSuccess   (green)  - Successful fetches, finished queries
//	ColorError     (red)    - Failed fetches and queries
//	ColorWarning   (yellow) - Running queries
//	ColorMuted     (gray)   - Secondary text, timestamps
//	ColorCached    (cyan)   - Cache-hit durations
//	ColorUncached  (magenta) - Uncached durations
package ui
