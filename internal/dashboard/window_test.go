package dashboard

import (
	"testing"
	"time"

	"github.com/iceforge/skadimon/internal/api"
	"github.com/iceforge/skadimon/internal/logger"
	"github.com/iceforge/skadimon/internal/scheduler"
	schedtesting "github.com/iceforge/skadimon/internal/scheduler/testing"
	"github.com/iceforge/skadimon/internal/stream"
	"github.com/iceforge/skadimon/internal/viewstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(src stream.Source, w api.Window) (*WindowController, *viewstate.Store, *logger.BufferLogger) {
	clock := schedtesting.NewFakeClock(time.Unix(0, 0))
	store := viewstate.New(w)
	log := logger.NewBufferLogger()
	c := NewWindowController(src, store, stream.Options{
		Scheduler: scheduler.New(clock),
		Logger:    log,
	})
	return c, store, log
}

func TestWindowController_SetWindowBeforeStartDoesNotPoll(t *testing.T) {
	src := newGatedSource()
	c, store, _ := newTestController(src, api.Window1h)

	require.True(t, c.SetWindow(api.Window15m))
	assert.Equal(t, api.Window15m, store.Window())
	assert.Empty(t, src.series, "no request before Start")

	c.Start()
	defer c.Stop()
	assert.Equal(t, api.Window15m, next(t, src.series).window)
}

func TestWindowController_UnknownWindowIsIgnored(t *testing.T) {
	src := newGatedSource()
	c, store, log := newTestController(src, api.Window6h)
	before := store.Version()

	assert.False(t, c.SetWindow(api.Window("2d")))
	assert.Equal(t, api.Window6h, c.Window())
	assert.Equal(t, before, store.Version())
	assert.True(t, log.HasLevel("warn"))
}

func TestWindowController_SwitchStopsOldStream(t *testing.T) {
	src := newGatedSource()
	c, store, _ := newTestController(src, api.Window1h)
	c.Start()
	defer c.Stop()

	old := next(t, src.series)
	require.Equal(t, api.Window1h, old.window)

	require.True(t, c.SetWindow(api.Window24h))
	fresh := next(t, src.series)
	assert.Equal(t, api.Window24h, fresh.window)

	// The old stream's reply lands after the switch and must be dropped.
	ts := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	old.reply <- reply{series: api.Series{{Timestamp: ts, CachedMs: pt(1)}}}
	fresh.reply <- reply{series: api.Series{{Timestamp: ts, UncachedMs: pt(2)}, {Timestamp: ts.Add(time.Hour), UncachedMs: pt(3)}}}
	c.Wait()

	snap := store.Snapshot()
	assert.Equal(t, api.Window24h, snap.Window)
	assert.Len(t, snap.Series, 2)
}

func TestWindowController_StopIsIdempotent(t *testing.T) {
	src := newGatedSource()
	c, _, _ := newTestController(src, api.Window1h)
	c.Start()
	next(t, src.series).reply <- reply{}

	c.Stop()
	c.Stop()
	c.Wait()
}

func TestWindowController_RetiredStreamsAreReleased(t *testing.T) {
	src := newGatedSource()
	c, _, _ := newTestController(src, api.Window1h)
	c.Start()
	defer c.Stop()

	for _, w := range []api.Window{api.Window6h, api.Window24h, api.Window15m, api.Window1h} {
		pending := next(t, src.series)
		require.True(t, c.SetWindow(w))
		pending.reply <- reply{}
	}
	next(t, src.series).reply <- reply{}

	assert.Eventually(t, func() bool { return c.draining() == 0 },
		time.Second, 10*time.Millisecond)
}

func TestWindowController_RetiredStreamHeldWhileRequestPending(t *testing.T) {
	src := newGatedSource()
	c, _, _ := newTestController(src, api.Window1h)
	c.Start()
	defer c.Stop()

	pending := next(t, src.series)
	require.True(t, c.SetWindow(api.Window6h))
	assert.Equal(t, 1, c.draining())

	pending.reply <- reply{}
	next(t, src.series).reply <- reply{}
	assert.Eventually(t, func() bool { return c.draining() == 0 },
		time.Second, 10*time.Millisecond)
}
