package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/iceforge/skadimon/internal/api"
	"github.com/iceforge/skadimon/internal/errors"
	"github.com/iceforge/skadimon/internal/projection"
	"github.com/iceforge/skadimon/internal/stream"
	"github.com/iceforge/skadimon/internal/ui"
	"github.com/iceforge/skadimon/internal/util"
	"golang.org/x/sync/errgroup"
)

// sparklineWidth caps the snapshot's duration sparklines.
const sparklineWidth = 60

// snapshotColumns mirrors projection.HistoryColumns with widths for a plain table.
var snapshotColumns = []ui.TableColumn{
	{Title: "Started", Width: 16},
	{Title: "Query", Width: 24},
	{Title: "Source", Width: 6},
	{Title: "Cache", Width: 5},
	{Title: "Duration", Width: 10},
	{Title: "Rows", Width: 10},
	{Title: "Status", Width: 7},
}

// Snapshot is one concurrent fetch of every endpoint. A failed endpoint
// leaves its field empty and records the error instead.
type Snapshot struct {
	BaseURL string                `json:"baseUrl"`
	Window  api.Window            `json:"window"`
	Fetched time.Time             `json:"fetchedAt"`
	Live    *api.LiveMetrics      `json:"live,omitempty"`
	Series  api.Series            `json:"series,omitempty"`
	History api.History           `json:"history,omitempty"`
	Errors  map[string]*JSONError `json:"errors,omitempty"`

	errs map[string]error
}

// Failed reports whether every endpoint failed.
func (s *Snapshot) Failed() bool {
	return len(s.errs) == 3
}

// fetchSnapshot polls all three endpoints once, concurrently. Endpoint
// failures are collected, not returned; the error is only for a cancelled ctx.
func fetchSnapshot(ctx context.Context, src stream.Source, baseURL string, w api.Window) (*Snapshot, error) {
	snap := &Snapshot{
		BaseURL: baseURL,
		Window:  w,
		Fetched: time.Now(),
	}

	var (
		live    api.LiveMetrics
		liveErr error
		series  api.Series
		serErr  error
		history api.History
		histErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		live, liveErr = src.Live(gctx)
		return nil
	})
	g.Go(func() error {
		series, serErr = src.TimeSeries(gctx, w)
		return nil
	})
	g.Go(func() error {
		history, histErr = src.History(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap.errs = make(map[string]error)
	if liveErr != nil {
		snap.errs[stream.NameLive] = liveErr
	} else {
		snap.Live = &live
	}
	if serErr != nil {
		snap.errs[stream.NameSeries] = serErr
	} else {
		snap.Series = series
	}
	if histErr != nil {
		snap.errs[stream.NameHistory] = histErr
	} else {
		snap.History = history
	}

	if len(snap.errs) > 0 {
		snap.Errors = make(map[string]*JSONError, len(snap.errs))
		for name, err := range snap.errs {
			snap.Errors[name] = ErrorToJSON(err)
		}
	}
	return snap, nil
}

// snapshotCommand fetches everything once and prints it.
func snapshotCommand(ctx context.Context, out io.Writer, windowFlag string, asJSON bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := loadSettings()
	if err != nil {
		return err
	}
	window, err := resolveWindow(windowFlag, s.cfg.Window())
	if err != nil {
		return err
	}
	client, err := s.newClient()
	if err != nil {
		return err
	}

	snap, err := fetchSnapshot(ctx, client, client.BaseURL(), window)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrExec, "Snapshot interrupted", "")
	}

	if asJSON {
		if snap.Failed() {
			return WriteJSONError(out, ErrCodeServerUnreachable,
				"Every endpoint failed", "Check base_url and that the node is up", snap.Errors)
		}
		return WriteJSONSuccess(out, snap)
	}

	fmt.Fprint(out, renderSnapshot(snap))
	if snap.Failed() {
		return errors.New(errors.ErrTransport,
			"Every endpoint failed on "+snap.BaseURL,
			"Check base_url and that the node is up")
	}
	return nil
}

// renderSnapshot formats a snapshot for the terminal.
func renderSnapshot(snap *Snapshot) string {
	var b strings.Builder

	b.WriteString(ui.RenderHeader(ui.HeaderInfo{
		Version: formatVersion(GetVersion()),
		BaseURL: snap.BaseURL,
		Window:  snap.Window.Label(),
	}))
	b.WriteString("\n")
	b.WriteString(ui.RenderStreamTable(snapshotStreamRows(snap)))

	if snap.Live != nil {
		b.WriteString("\n")
		for _, kpi := range projection.KPIs(*snap.Live) {
			fmt.Fprintf(&b, "  %-22s %s\n", kpi.Label, kpi.Value)
		}
		fmt.Fprintf(&b, "  %-22s %s\n", "UPDATED", projection.Updated(*snap.Live))
	}

	if snap.errs[stream.NameSeries] == nil {
		b.WriteString("\n")
		b.WriteString(renderSparklines(snap.Series))
	}

	if snap.errs[stream.NameHistory] == nil {
		b.WriteString("\n")
		b.WriteString(renderHistoryTable(snap.History))
	}

	return b.String()
}

// snapshotStreamRows summarises each endpoint's outcome.
func snapshotStreamRows(snap *Snapshot) []ui.StreamRow {
	rows := []ui.StreamRow{
		{Stream: stream.NameLive},
		{Stream: stream.NameSeries},
		{Stream: stream.NameHistory},
	}
	for i := range rows {
		if err, failed := snap.errs[rows[i].Stream]; failed {
			rows[i].Detail = fmt.Sprintf("[%s] %s", errors.CodeOf(err), err.Error())
			continue
		}
		rows[i].OK = true
		switch rows[i].Stream {
		case stream.NameLive:
			n := snap.Live.ClusterNodes
			rows[i].Detail = humanize.Comma(int64(n)) + " " + util.Pluralize(n, "node", "nodes")
		case stream.NameSeries:
			rows[i].Detail = fmt.Sprintf("%d %s", len(snap.Series), util.Pluralize(len(snap.Series), "bucket", "buckets"))
		case stream.NameHistory:
			rows[i].Detail = fmt.Sprintf("%d %s", len(snap.History), util.Pluralize(len(snap.History), "query", "queries"))
		}
	}
	return rows
}

// renderSparklines draws the cached and uncached duration series.
func renderSparklines(series api.Series) string {
	points := projection.ChartPoints(series)
	if len(points) == 0 {
		return "  No samples in this window.\n"
	}

	cached := make([]*float64, len(points))
	uncached := make([]*float64, len(points))
	for i, p := range points {
		cached[i] = p.CachedMs
		uncached[i] = p.UncachedMs
	}
	peak := projection.MaxDuration(points)

	var b strings.Builder
	fmt.Fprintf(&b, "  %-9s %s\n", "cached", ui.RenderSparkline(cached, sparklineWidth, ui.ColorCached))
	fmt.Fprintf(&b, "  %-9s %s\n", "uncached", ui.RenderSparkline(uncached, sparklineWidth, ui.ColorUncached))
	fmt.Fprintf(&b, "  %-9s %s\n", "peak", projection.Duration(&peak))
	return b.String()
}

// renderHistoryTable renders history as a static table, or the placeholder.
func renderHistoryTable(history api.History) string {
	rows := projection.HistoryRows(history)
	if len(rows) == 0 {
		return "  " + projection.NoHistory + "\n"
	}
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = row.Cells
	}
	return ui.RenderSimpleTable(snapshotColumns, cells) + "\n"
}
