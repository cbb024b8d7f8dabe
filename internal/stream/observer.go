package stream

import (
	"sync"
	"time"
)

// Observer is told about every poll outcome. Failures never reach the view
// state; this is the one place they can be counted or reported.
type Observer interface {
	PollSucceeded(stream string, latency time.Duration)
	PollFailed(stream, kind string, err error)
	ResponseDiscarded(stream, reason string)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) PollSucceeded(string, time.Duration) {}
func (NopObserver) PollFailed(string, string, error)    {}
func (NopObserver) ResponseDiscarded(string, string)    {}

// StreamStats are the counters kept for one stream.
type StreamStats struct {
	Successes   int
	Failures    map[string]int // by error code
	Discarded   int
	LastError   string
	LastErrorAt time.Time
	LastLatency time.Duration
}

// TotalFailures sums failures of every kind.
func (s StreamStats) TotalFailures() int {
	n := 0
	for _, c := range s.Failures {
		n += c
	}
	return n
}

// Stats is an Observer that keeps per-stream counters.
type Stats struct {
	mu      sync.Mutex
	streams map[string]*StreamStats
	now     func() time.Time
}

// NewStats creates an empty counter set.
func NewStats() *Stats {
	return &Stats{
		streams: make(map[string]*StreamStats),
		now:     time.Now,
	}
}

func (s *Stats) get(name string) *StreamStats {
	st, ok := s.streams[name]
	if !ok {
		st = &StreamStats{Failures: make(map[string]int)}
		s.streams[name] = st
	}
	return st
}

func (s *Stats) PollSucceeded(stream string, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.get(stream)
	st.Successes++
	st.LastLatency = latency
}

func (s *Stats) PollFailed(stream, kind string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.get(stream)
	st.Failures[kind]++
	if err != nil {
		st.LastError = err.Error()
	}
	st.LastErrorAt = s.now()
}

func (s *Stats) ResponseDiscarded(stream, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(stream).Discarded++
}

// Stream returns a copy of the counters for one stream.
func (s *Stats) Stream(name string) StreamStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.streams[name]
	if !ok {
		return StreamStats{Failures: map[string]int{}}
	}
	out := *st
	out.Failures = make(map[string]int, len(st.Failures))
	for k, v := range st.Failures {
		out.Failures[k] = v
	}
	return out
}
