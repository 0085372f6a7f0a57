// Package lru implements the recency-ordered bounded-map replacement
// policy: a single doubly-linked list ordered front = most-recently-used,
// back = least-recently-used, plus a hash index from key to list
// position.
//
// The node/list mechanics are capacitor/pkg/cache/memory's lruList[K]
// generalized into the shared dlist package; the admission/eviction logic
// is capacitor/pkg/cache/memory.Cache's EvictionLRU branch of evict(),
// pulled out of its TTL-aware host and rebuilt against a bounded-only
// contract (no expiration, no sync.Pool entry recycling — see DESIGN.md
// for why the pool is dropped).
package lru

import (
	"github.com/watt-toolkit/cachekit/pkg/cache"
	"github.com/watt-toolkit/cachekit/pkg/cache/internal/dlist"
)

// record is what the index maps a key to: the live value plus the node
// threading it through the recency list.
type record[K comparable, V any] struct {
	value V
	node  *dlist.Node[K]
}

// engine is the unsynchronized LRU core. Guarded is the only caller of its
// methods and always holds its mutex first.
type engine[K comparable, V any] struct {
	capacity int
	index    map[K]*record[K, V]
	order    *dlist.List[K]
}

// New constructs an LRU-policy cache of the given capacity. capacity <= 0
// is accepted: Put then always fails and Get always misses.
func New[K comparable, V any](capacity int, opts ...cache.Option) *cache.Guarded[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	eng := &engine[K, V]{
		capacity: capacity,
		index:    make(map[K]*record[K, V]),
		order:    dlist.New[K](),
	}
	return cache.NewGuarded[K, V](eng, opts...)
}

// Put implements cache.Engine.
func (e *engine[K, V]) Put(key K, value V) (ok, isNew, evicted bool) {
	if r, exists := e.index[key]; exists {
		r.value = value
		e.order.MoveToFront(r.node)
		return true, false, false
	}

	if e.capacity == 0 {
		return false, false, false
	}

	if len(e.index) >= e.capacity {
		e.evictOldest()
		evicted = true
	}

	node := e.order.PushFront(key)
	e.index[key] = &record[K, V]{value: value, node: node}
	return true, true, evicted
}

// Get implements cache.Engine.
func (e *engine[K, V]) Get(key K) (V, bool) {
	r, ok := e.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	e.order.MoveToFront(r.node)
	return r.value, true
}

// Remove implements cache.Engine.
func (e *engine[K, V]) Remove(key K) bool {
	r, ok := e.index[key]
	if !ok {
		return false
	}
	e.order.Remove(r.node)
	delete(e.index, key)
	return true
}

// Clear implements cache.Engine.
func (e *engine[K, V]) Clear() {
	e.index = make(map[K]*record[K, V])
	e.order = dlist.New[K]()
}

// Size implements cache.Engine.
func (e *engine[K, V]) Size() int {
	return len(e.index)
}

// Capacity implements cache.Engine.
func (e *engine[K, V]) Capacity() int {
	return e.capacity
}

// evictOldest removes the least-recently-used entry (list back).
// Precondition: the list is non-empty.
func (e *engine[K, V]) evictOldest() {
	node := e.order.Back()
	if node == nil {
		return
	}
	delete(e.index, node.Value)
	e.order.Remove(node)
}
