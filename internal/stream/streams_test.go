package stream

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/iceforge/skadimon/internal/api"
	"github.com/iceforge/skadimon/internal/scheduler"
	schedtesting "github.com/iceforge/skadimon/internal/scheduler/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu      sync.Mutex
	windows []api.Window
}

func (f *fakeSource) Live(context.Context) (api.LiveMetrics, error) {
	return api.LiveMetrics{ClusterNodes: 3}, nil
}

func (f *fakeSource) TimeSeries(_ context.Context, w api.Window) (api.Series, error) {
	f.mu.Lock()
	f.windows = append(f.windows, w)
	f.mu.Unlock()
	return api.Series{}, nil
}

func (f *fakeSource) History(context.Context) (api.History, error) {
	return api.History{{QueryID: "q"}}, nil
}

func TestConstructors_DefaultCadences(t *testing.T) {
	src := &fakeSource{}

	live := NewLive(src, Options{})
	series := NewSeries(src, api.Window15m, Options{})
	history := NewHistory(src, Options{})

	assert.Equal(t, 3*time.Second, live.Interval())
	assert.Equal(t, 8*time.Second, series.Interval())
	assert.Equal(t, 6*time.Second, history.Interval())

	assert.Equal(t, NameLive, live.Name())
	assert.Equal(t, NameSeries, series.Name())
	assert.Equal(t, NameHistory, history.Name())
}

func TestConstructors_IntervalOverride(t *testing.T) {
	m := NewLive(&fakeSource{}, Options{Interval: 500 * time.Millisecond})
	assert.Equal(t, 500*time.Millisecond, m.Interval())
}

func TestNewSeries_BindsWindow(t *testing.T) {
	src := &fakeSource{}
	sched := scheduler.New(schedtesting.NewFakeClock(time.Unix(0, 0)))

	m := NewSeries(src, api.Window24h, Options{Scheduler: sched})
	got := make(chan api.Series, 1)
	detach := m.Attach(func(s api.Series) { got <- s })
	defer detach()

	select {
	case <-got:
	case <-time.After(waitFor):
		t.Fatal("series stream never delivered")
	}

	src.mu.Lock()
	defer src.mu.Unlock()
	require.Len(t, src.windows, 1)
	assert.Equal(t, api.Window24h, src.windows[0])
}
