package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// CacheStats groups the counters a query cache reports.
type CacheStats struct {
	Hits          Counter
	Misses        Counter
	Fetches       Counter
	FetchErrors   Counter
	Invalidations Counter
	fetchNanos    uint64
}

// ObserveFetch records one finished fetch and its duration.
func (s *CacheStats) ObserveFetch(d time.Duration, err error) {
	s.Fetches.Inc()
	if err != nil {
		s.FetchErrors.Inc()
	}
	atomic.AddUint64(&s.fetchNanos, uint64(d))
}

// Snapshot is a point-in-time copy of CacheStats.
type Snapshot struct {
	Hits          uint64        `json:"hits" yaml:"hits"`
	Misses        uint64        `json:"misses" yaml:"misses"`
	Fetches       uint64        `json:"fetches" yaml:"fetches"`
	FetchErrors   uint64        `json:"fetchErrors" yaml:"fetchErrors"`
	Invalidations uint64        `json:"invalidations" yaml:"invalidations"`
	AvgFetch      time.Duration `json:"avgFetch" yaml:"avgFetch"`
}

func (s *CacheStats) Snapshot() Snapshot {
	snap := Snapshot{
		Hits:          s.Hits.Load(),
		Misses:        s.Misses.Load(),
		Fetches:       s.Fetches.Load(),
		FetchErrors:   s.FetchErrors.Load(),
		Invalidations: s.Invalidations.Load(),
	}
	if snap.Fetches > 0 {
		snap.AvgFetch = time.Duration(atomic.LoadUint64(&s.fetchNanos) / snap.Fetches)
	}
	return snap
}

// HitRatio is hits over lookups, zero when nothing was looked up yet.
func (s Snapshot) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
