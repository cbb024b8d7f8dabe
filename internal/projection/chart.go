package projection

import (
	"time"

	"github.com/iceforge/skadimon/internal/api"
)

// ChartPoint is one x position of the duration chart. Nil durations are
// gaps and must not be interpolated.
type ChartPoint struct {
	Label      string
	Timestamp  time.Time
	CachedMs   *float64
	UncachedMs *float64
}

// ChartPoints maps a series to chart points one-to-one, in order.
func ChartPoints(series api.Series) []ChartPoint {
	points := make([]ChartPoint, len(series))
	for i, p := range series {
		points[i] = ChartPoint{
			Label:      TimeOfDay(p.Timestamp),
			Timestamp:  p.Timestamp,
			CachedMs:   p.CachedMs,
			UncachedMs: p.UncachedMs,
		}
	}
	return points
}

// MaxDuration is the largest non-nil duration across both lines, or 0.
func MaxDuration(points []ChartPoint) float64 {
	peak := 0.0
	for _, p := range points {
		for _, v := range []*float64{p.CachedMs, p.UncachedMs} {
			if v != nil && *v > peak {
				peak = *v
			}
		}
	}
	return peak
}
