package cache

import "testing"

func TestSnapshotHitRate(t *testing.T) {
	cases := []struct {
		name        string
		hits, miss  int64
		wantHitRate float64
	}{
		{"no samples", 0, 0, 0},
		{"all hits", 10, 0, 1},
		{"all misses", 0, 10, 0},
		{"half and half", 5, 5, 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Snapshot{Hits: tc.hits, Misses: tc.miss}
			if got := s.HitRate(); got != tc.wantHitRate {
				t.Fatalf("HitRate() = %v, want %v", got, tc.wantHitRate)
			}
		})
	}
}

func TestMetricsCounters(t *testing.T) {
	m := newMetrics()

	m.recordHit()
	m.recordHit()
	m.recordMiss()
	m.recordEviction()
	m.recordRemoval()
	m.incrementSize()
	m.incrementSize()
	m.decrementSize()

	snap := m.Snapshot()
	want := Snapshot{Hits: 2, Misses: 1, Evictions: 1, Removals: 1, CurrentSize: 1}
	if snap != want {
		t.Fatalf("Snapshot() = %+v, want %+v", snap, want)
	}

	m.setSize(42)
	if got := m.Snapshot().CurrentSize; got != 42 {
		t.Fatalf("CurrentSize after setSize(42) = %d, want 42", got)
	}
}

func TestLatencyHistogramDisabledByDefault(t *testing.T) {
	m := newMetrics()
	m.observeLatency(1500)

	buckets, over := m.LatencyHistogram()
	for i, c := range buckets {
		if c != 0 {
			t.Fatalf("bucket %d = %d, want 0 (histogram must be a no-op until enabled)", i, c)
		}
	}
	if over != 0 {
		t.Fatalf("overflow = %d, want 0", over)
	}
}

func TestLatencyHistogramBucketing(t *testing.T) {
	m := newMetrics()
	m.histogram.enable()

	m.observeLatency(500)     // <= 1e3
	m.observeLatency(1_500)   // <= 2e3
	m.observeLatency(2_000_000) // over the largest bound (1e6)

	buckets, over := m.LatencyHistogram()
	if buckets[0] != 1 {
		t.Fatalf("bucket[0] = %d, want 1", buckets[0])
	}
	if buckets[1] != 1 {
		t.Fatalf("bucket[1] = %d, want 1", buckets[1])
	}
	if over != 1 {
		t.Fatalf("overflow = %d, want 1", over)
	}
}
