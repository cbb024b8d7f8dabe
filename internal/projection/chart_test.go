package projection

import (
	"testing"
	"time"

	"github.com/iceforge/skadimon/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartPoints_KeepsNils(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	t2 := t1.Add(time.Minute)
	series := api.Series{
		{Timestamp: t1, CachedMs: f(120)},
		{Timestamp: t2, UncachedMs: f(900)},
	}

	points := ChartPoints(series)

	require.Len(t, points, 2)
	assert.Equal(t, "10:00", points[0].Label)
	require.NotNil(t, points[0].CachedMs)
	assert.Equal(t, 120.0, *points[0].CachedMs)
	assert.Nil(t, points[0].UncachedMs)

	assert.Equal(t, "10:01", points[1].Label)
	assert.Nil(t, points[1].CachedMs)
	require.NotNil(t, points[1].UncachedMs)
	assert.Equal(t, 900.0, *points[1].UncachedMs)
}

func TestChartPoints_Empty(t *testing.T) {
	assert.Empty(t, ChartPoints(nil))
	assert.Equal(t, 0.0, MaxDuration(nil))
}

func TestMaxDuration(t *testing.T) {
	points := []ChartPoint{
		{CachedMs: f(120)},
		{UncachedMs: f(900)},
		{},
	}
	assert.Equal(t, 900.0, MaxDuration(points))
}
