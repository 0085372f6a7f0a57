// Package lfu implements the frequency-bucketed bounded-map replacement
// policy: a map from frequency to an ordered list of nodes at that exact
// frequency (front = most recently promoted into the bucket, back = least
// recently), an index from key to (list position, current frequency),
// and a running minimum frequency.
//
// It is built on the same dlist primitive the lru package uses rather
// than a second bespoke list type.
package lfu

import (
	"github.com/watt-toolkit/cachekit/pkg/cache"
	"github.com/watt-toolkit/cachekit/pkg/cache/internal/dlist"
)

// record is what the index maps a key to.
type record[K comparable, V any] struct {
	value V
	freq  int
	node  *dlist.Node[K]
}

// engine is the unsynchronized LFU core.
type engine[K comparable, V any] struct {
	capacity int
	index    map[K]*record[K, V]
	buckets  map[int]*dlist.List[K]
	minFreq  int
}

// New constructs an LFU-policy cache of the given capacity.
func New[K comparable, V any](capacity int, opts ...cache.Option) *cache.Guarded[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	eng := &engine[K, V]{
		capacity: capacity,
		index:    make(map[K]*record[K, V]),
		buckets:  make(map[int]*dlist.List[K]),
	}
	return cache.NewGuarded[K, V](eng, opts...)
}

// bucket returns (creating if necessary) the list for frequency f.
func (e *engine[K, V]) bucket(f int) *dlist.List[K] {
	b, ok := e.buckets[f]
	if !ok {
		b = dlist.New[K]()
		e.buckets[f] = b
	}
	return b
}

// touch promotes key from its current frequency bucket to the next one up.
func (e *engine[K, V]) touch(key K, r *record[K, V]) {
	f := r.freq
	oldBucket := e.buckets[f]
	oldBucket.Remove(r.node)
	if oldBucket.Len() == 0 {
		delete(e.buckets, f)
		if e.minFreq == f {
			e.minFreq = f + 1
		}
	}

	newBucket := e.bucket(f + 1)
	r.node = newBucket.PushFront(key)
	r.freq = f + 1
}

// Put implements cache.Engine.
func (e *engine[K, V]) Put(key K, value V) (ok, isNew, evicted bool) {
	if r, exists := e.index[key]; exists {
		r.value = value
		e.touch(key, r)
		return true, false, false
	}

	if e.capacity == 0 {
		return false, false, false
	}

	if len(e.index) >= e.capacity {
		e.evict()
		evicted = true
	}

	node := e.bucket(1).PushFront(key)
	e.index[key] = &record[K, V]{value: value, node: node, freq: 1}
	e.minFreq = 1
	return true, true, evicted
}

// Get implements cache.Engine.
func (e *engine[K, V]) Get(key K) (V, bool) {
	r, ok := e.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	e.touch(key, r)
	return r.value, true
}

// Remove implements cache.Engine.
func (e *engine[K, V]) Remove(key K) bool {
	r, ok := e.index[key]
	if !ok {
		return false
	}
	b := e.buckets[r.freq]
	b.Remove(r.node)
	if b.Len() == 0 {
		delete(e.buckets, r.freq)
	}
	delete(e.index, key)
	return true
}

// Clear implements cache.Engine.
func (e *engine[K, V]) Clear() {
	e.index = make(map[K]*record[K, V])
	e.buckets = make(map[int]*dlist.List[K])
	e.minFreq = 0
}

// Size implements cache.Engine.
func (e *engine[K, V]) Size() int {
	return len(e.index)
}

// Capacity implements cache.Engine.
func (e *engine[K, V]) Capacity() int {
	return e.capacity
}

// evict removes the back (least-recently-touched) node of the minimum
// frequency bucket. It does not re-advance minFreq here, since the
// insertion that follows always resets it to 1.
//
// minFreq is only maintained by touch, which runs on Put for an existing
// key and on Get on a hit. A standalone Remove can empty what was the
// minimum bucket without anything re-deriving minFreq, so evict
// defensively re-scans if the recorded minFreq bucket turns out to be
// stale — this only happens after an intervening Remove.
func (e *engine[K, V]) evict() {
	f := e.minFreq
	b, ok := e.buckets[f]
	if !ok || b.Len() == 0 {
		f = e.lowestNonEmptyFrequency()
		e.minFreq = f
		b = e.buckets[f]
	}

	node := b.Back()
	b.Remove(node)
	if b.Len() == 0 {
		delete(e.buckets, f)
	}
	delete(e.index, node.Value)
}

func (e *engine[K, V]) lowestNonEmptyFrequency() int {
	min := -1
	for f, b := range e.buckets {
		if b.Len() == 0 {
			continue
		}
		if min == -1 || f < min {
			min = f
		}
	}
	return min
}
