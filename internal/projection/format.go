// Package projection turns view state into display strings. Everything here
// is a pure function of its arguments; nothing is fetched or cached.
package projection

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/iceforge/skadimon/internal/api"
)

// Missing is shown wherever a value is absent.
const Missing = "—"

// NoHistory is the single placeholder row shown for an empty history.
const NoHistory = "No history yet."

// TimeOfDay formats t as local hours and minutes.
func TimeOfDay(t time.Time) string {
	if t.IsZero() {
		return Missing
	}
	return t.Local().Format("15:04")
}

// DateTime formats t as a local date and time to the minute.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return Missing
	}
	return t.Local().Format("2006-01-02 15:04")
}

// Duration renders a millisecond duration. Sub-second values are whole
// milliseconds and sub-minute values are seconds rounded to two decimals.
// Anything longer is minutes and seconds, with the seconds truncated.
func Duration(ms *float64) string {
	if ms == nil || math.IsNaN(*ms) {
		return Missing
	}
	v := math.Max(*ms, 0)
	switch {
	case v < 1000:
		return fmt.Sprintf("%d ms", int64(v))
	case v < 60_000:
		return fmt.Sprintf("%.2f s", v/1000)
	default:
		total := int64(v / 1000)
		return fmt.Sprintf("%d:%02d min", total/60, total%60)
	}
}

// RowCountLabel renders a row count with thousands separators.
func RowCountLabel(n *int64) string {
	if n == nil {
		return Missing
	}
	return humanize.Comma(*n)
}

// QueryURL is the backend UI page for one query.
func QueryURL(base, queryID string) string {
	return strings.TrimRight(base, "/") + "/ui/query/" + url.PathEscape(queryID)
}

// KPI is one labelled value of the KPI strip.
type KPI struct {
	Label string
	Value string
}

// KPI labels, in display order.
const (
	LabelUncached = "RUNNING · UNCACHED"
	LabelCached   = "RUNNING · CACHE HIT"
	LabelNodes    = "CLUSTER NODES"
)

// KPIs returns the strip for live, in display order.
func KPIs(live api.LiveMetrics) []KPI {
	return []KPI{
		{Label: LabelUncached, Value: fmt.Sprint(live.RunningUncached)},
		{Label: LabelCached, Value: fmt.Sprint(live.RunningCached)},
		{Label: LabelNodes, Value: fmt.Sprint(live.ClusterNodes)},
	}
}

// Updated is the "updated at" label for live.
func Updated(live api.LiveMetrics) string {
	return TimeOfDay(live.UpdatedAt)
}

// HistoryColumns are the history table headers.
var HistoryColumns = []string{"Started", "Query", "Source", "Cache", "Duration", "Rows", "Status"}

// HistoryRow is one formatted history table row.
type HistoryRow struct {
	QueryID string
	Cells   []string
}

// HistoryRows formats every row, preserving order. An empty history yields
// no rows; callers render NoHistory in its place.
func HistoryRows(history api.History) []HistoryRow {
	rows := make([]HistoryRow, 0, len(history))
	for _, q := range history {
		rows = append(rows, HistoryRow{
			QueryID: q.QueryID,
			Cells: []string{
				DateTime(q.StartedAt),
				q.QueryID,
				string(q.Source),
				CacheLabel(q.Cached),
				Duration(q.DurationMs),
				RowCountLabel(q.RowCount),
				string(q.Status),
			},
		})
	}
	return rows
}

// CacheLabel renders the cached flag.
func CacheLabel(cached bool) string {
	if cached {
		return "HIT"
	}
	return "MISS"
}

// Freshness says whether a stream's data can be trusted.
type Freshness int

const (
	// Waiting means no poll has succeeded yet.
	Waiting Freshness = iota
	Fresh
	// Stale means more than misses cadences passed since the last success.
	Stale
)

func (f Freshness) String() string {
	switch f {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "waiting"
	}
}

// FreshnessOf classifies a stream whose last success was at last.
func FreshnessOf(last time.Time, cadence time.Duration, misses int, now time.Time) Freshness {
	if last.IsZero() {
		return Waiting
	}
	if misses < 1 {
		misses = 1
	}
	if now.Sub(last) > time.Duration(misses)*cadence {
		return Stale
	}
	return Fresh
}

// Age renders how long ago t was, relative to now.
func Age(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	if now.Sub(t) < time.Second {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
