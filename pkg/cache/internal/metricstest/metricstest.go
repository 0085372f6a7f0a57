// Package metricstest holds tiny assertion helpers shared by the lru and
// lfu test suites so each one doesn't redefine its own
// snapshot-comparison boilerplate.
package metricstest

import (
	"testing"

	"github.com/watt-toolkit/cachekit/pkg/cache"
)

// Want describes the subset of a Snapshot a test cares about. Fields left
// at -1 are not checked.
type Want struct {
	Hits, Misses, Evictions, Removals, CurrentSize int64
}

const unchecked = -1

// NoCheck returns a Want with every field set to "don't check".
func NoCheck() Want {
	return Want{Hits: unchecked, Misses: unchecked, Evictions: unchecked, Removals: unchecked, CurrentSize: unchecked}
}

// Assert fails t with a descriptive message for every field of want that is
// not unchecked and does not match got.
func Assert(t *testing.T, got cache.Snapshot, want Want) {
	t.Helper()
	if want.Hits != unchecked && got.Hits != want.Hits {
		t.Errorf("hits = %d, want %d", got.Hits, want.Hits)
	}
	if want.Misses != unchecked && got.Misses != want.Misses {
		t.Errorf("misses = %d, want %d", got.Misses, want.Misses)
	}
	if want.Evictions != unchecked && got.Evictions != want.Evictions {
		t.Errorf("evictions = %d, want %d", got.Evictions, want.Evictions)
	}
	if want.Removals != unchecked && got.Removals != want.Removals {
		t.Errorf("removals = %d, want %d", got.Removals, want.Removals)
	}
	if want.CurrentSize != unchecked && got.CurrentSize != want.CurrentSize {
		t.Errorf("currentSize = %d, want %d", got.CurrentSize, want.CurrentSize)
	}
}
