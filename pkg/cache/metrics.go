package cache

import (
	"sync/atomic"
	"time"
)

// latencyBuckets are the fixed histogram bounds (nanoseconds) for
// Put/Get operation latency observations.
var latencyBuckets = [...]int64{1e3, 2e3, 5e3, 1e4, 5e4, 1e5, 5e5, 1e6}

// Metrics holds the atomic counters and latency histogram a Guarded cache
// owns. It generalizes capacitor/pkg/cache/memory's AtomicMetrics: the
// expiration/set/delete counters that package carries for its TTL cache
// have no home here (this cache has no TTL, and a put on an existing key
// is a value update rather than a distinct countable event), but a
// Removals counter is kept as a harmless superset of what the contract
// requires.
//
// All counter fields are updated with relaxed-order atomics; no ordering
// is required across counters.
type Metrics struct {
	hits        atomic.Int64
	misses      atomic.Int64
	evictions   atomic.Int64
	removals    atomic.Int64
	currentSize atomic.Int64

	histogram latencyHistogram
}

// Snapshot is a point-in-time, read-only view of a cache's metrics.
// Individual fields are each monotonic (except CurrentSize) but are not
// mutually consistent under concurrent mutation — a Snapshot may be
// stale relative to an in-flight operation, but each counter never
// regresses on its own.
type Snapshot struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	Removals    int64
	CurrentSize int64
}

// HitRate returns Hits/(Hits+Misses), or 0 when no Get has completed yet.
func (s Snapshot) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func newMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordHit()      { m.hits.Add(1) }
func (m *Metrics) recordMiss()     { m.misses.Add(1) }
func (m *Metrics) recordEviction() { m.evictions.Add(1) }
func (m *Metrics) recordRemoval()  { m.removals.Add(1) }
func (m *Metrics) incrementSize()  { m.currentSize.Add(1) }
func (m *Metrics) decrementSize()  { m.currentSize.Add(-1) }
func (m *Metrics) setSize(n int64) { m.currentSize.Store(n) }

func (m *Metrics) observeLatency(d time.Duration) {
	m.histogram.observe(d.Nanoseconds())
}

// Snapshot returns a consistent-enough point-in-time copy of the counters.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Hits:        m.hits.Load(),
		Misses:      m.misses.Load(),
		Evictions:   m.evictions.Load(),
		Removals:    m.removals.Load(),
		CurrentSize: m.currentSize.Load(),
	}
}

// LatencyHistogram returns the current bucketed counts of observed
// operation latencies (nanoseconds), plus the overflow bucket for anything
// at or above the largest bound. Returns a zeroed snapshot when the
// histogram was never enabled (no Exporter configured and
// WithLatencyHistogram was not requested) — see Option.
func (m *Metrics) LatencyHistogram() ([len(latencyBuckets)]int64, int64) {
	return m.histogram.snapshot()
}

// latencyHistogram is a lock-free fixed-bucket histogram. Whether
// observations actually land in it is controlled by the enabled flag —
// when disabled, observe is a no-op so the default path pays nothing for
// a feature most callers never turn on.
type latencyHistogram struct {
	enabled atomic.Bool
	buckets [len(latencyBuckets)]atomic.Int64
	over    atomic.Int64
}

func (h *latencyHistogram) enable() { h.enabled.Store(true) }

func (h *latencyHistogram) observe(ns int64) {
	if !h.enabled.Load() {
		return
	}
	for i, bound := range latencyBuckets {
		if ns <= bound {
			h.buckets[i].Add(1)
			return
		}
	}
	h.over.Add(1)
}

func (h *latencyHistogram) snapshot() ([len(latencyBuckets)]int64, int64) {
	var out [len(latencyBuckets)]int64
	for i := range h.buckets {
		out[i] = h.buckets[i].Load()
	}
	return out, h.over.Load()
}
