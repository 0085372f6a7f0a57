// Package arc implements the Adaptive Replacement Cache policy: four
// lists — T1/T2 holding live entries, B1/B2 holding ghost keys — and an
// adaptive target size p that shifts the balance between recency (T1)
// and frequency (T2) in response to which ghost list is taking hits.
//
// This engine is built around a REPLACE helper and Case I-IV put logic,
// reusing the same dlist primitive and Engine contract as lru and lfu so
// the three policies remain structurally interchangeable under Guarded.
package arc

import (
	"github.com/watt-toolkit/cachekit/pkg/cache"
	"github.com/watt-toolkit/cachekit/pkg/cache/internal/dlist"
)

type tag int

const (
	tagT1 tag = iota
	tagT2
	tagB1
	tagB2
)

// record is what the index maps a key to. Ghost records (tag B1/B2) carry
// the zero value of V: ghost entries own only the key, their values are
// released at demotion.
type record[K comparable, V any] struct {
	value V
	node  *dlist.Node[K]
	tag   tag
}

// engine is the unsynchronized ARC core.
type engine[K comparable, V any] struct {
	capacity int
	p        int
	index    map[K]*record[K, V]
	t1, t2   *dlist.List[K]
	b1, b2   *dlist.List[K]
}

// New constructs an ARC-policy cache of the given capacity.
func New[K comparable, V any](capacity int, opts ...cache.Option) *cache.Guarded[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	eng := &engine[K, V]{
		capacity: capacity,
		index:    make(map[K]*record[K, V]),
		t1:       dlist.New[K](),
		t2:       dlist.New[K](),
		b1:       dlist.New[K](),
		b2:       dlist.New[K](),
	}
	return cache.NewGuarded[K, V](eng, opts...)
}

func (e *engine[K, V]) listFor(t tag) *dlist.List[K] {
	switch t {
	case tagT1:
		return e.t1
	case tagT2:
		return e.t2
	case tagB1:
		return e.b1
	default:
		return e.b2
	}
}

// replace evicts exactly one live entry (the REPLACE step), demoting its
// key to the ghost list its source tier feeds.
// Reports whether it actually found a live entry to demote. It returns
// false when T1 and T2 are both empty, which can happen when Remove has
// emptied the live lists while ghost keys remain.
func (e *engine[K, V]) replace(ghostType tag) bool {
	if e.t1.Len() > 0 && (e.t1.Len() > e.p || (ghostType == tagB2 && e.t1.Len() == e.p)) {
		node := e.t1.Back()
		k := node.Value
		e.t1.Remove(node)
		r := e.index[k]
		r.node = e.b1.PushFront(k)
		r.tag = tagB1
		var zero V
		r.value = zero
		return true
	}
	if e.t2.Len() > 0 {
		node := e.t2.Back()
		k := node.Value
		e.t2.Remove(node)
		r := e.index[k]
		r.node = e.b2.PushFront(k)
		r.tag = tagB2
		var zero V
		r.value = zero
		return true
	}
	return false
}

// Put implements cache.Engine, dispatching across the four admission
// cases: a live re-hit, a ghost hit on either side, and a cold key absent
// from every list.
func (e *engine[K, V]) Put(key K, value V) (ok, isNew, evicted bool) {
	if e.capacity == 0 {
		return false, false, false
	}

	if r, exists := e.index[key]; exists {
		switch r.tag {
		case tagT1, tagT2:
			// Case I: seen again, promote to T2.
			e.listFor(r.tag).Remove(r.node)
			r.node = e.t2.PushFront(key)
			r.tag = tagT2
			r.value = value
			return true, false, false

		case tagB1:
			// Case II: ghost hit on the recency side widens p.
			delta := 1
			if n := e.b1.Len(); n > 0 {
				if d := e.b2.Len() / n; d > delta {
					delta = d
				}
			}
			e.p = min(e.capacity, e.p+delta)
			evicted = e.replace(tagB1)
			e.b1.Remove(r.node)
			r.node = e.t2.PushFront(key)
			r.tag = tagT2
			r.value = value
			return true, true, evicted

		default: // tagB2
			// Case III: ghost hit on the frequency side narrows p.
			delta := 1
			if n := e.b2.Len(); n > 0 {
				if d := e.b1.Len() / n; d > delta {
					delta = d
				}
			}
			e.p = max(0, e.p-delta)
			evicted = e.replace(tagB2)
			e.b2.Remove(r.node)
			r.node = e.t2.PushFront(key)
			r.tag = tagT2
			r.value = value
			return true, true, evicted
		}
	}

	// Case IV: k absent from every list.
	t1n, t2n, b1n, b2n := e.t1.Len(), e.t2.Len(), e.b1.Len(), e.b2.Len()

	switch {
	case t1n+b1n == e.capacity:
		if t1n < e.capacity {
			back := e.b1.Back()
			e.b1.Remove(back)
			delete(e.index, back.Value)
			evicted = e.replace(tagB1)
		} else {
			back := e.t1.Back()
			e.t1.Remove(back)
			delete(e.index, back.Value)
			evicted = true
		}

	case t1n+b1n < e.capacity && t1n+t2n+b1n+b2n >= e.capacity:
		if t1n+t2n+b1n+b2n >= 2*e.capacity {
			if back := e.b2.Back(); back != nil {
				e.b2.Remove(back)
				delete(e.index, back.Value)
			}
		}
		evicted = e.replace(tagB1)
	}

	node := e.t1.PushFront(key)
	e.index[key] = &record[K, V]{value: value, node: node, tag: tagT1}
	return true, true, evicted
}

// Get implements cache.Engine. A hit in either T1 or T2 promotes the key
// to the front of T2; a ghost-list membership is a miss.
func (e *engine[K, V]) Get(key K) (V, bool) {
	r, ok := e.index[key]
	if !ok || r.tag == tagB1 || r.tag == tagB2 {
		var zero V
		return zero, false
	}

	if r.tag == tagT1 {
		e.t1.Remove(r.node)
		r.node = e.t2.PushFront(key)
		r.tag = tagT2
	} else {
		e.t2.MoveToFront(r.node)
	}
	return r.value, true
}

// Remove implements cache.Engine. It reports whether a live entry was
// removed; a key that is only a ghost is left untouched and reported as
// not-present.
func (e *engine[K, V]) Remove(key K) bool {
	r, ok := e.index[key]
	if !ok || (r.tag != tagT1 && r.tag != tagT2) {
		return false
	}
	e.listFor(r.tag).Remove(r.node)
	delete(e.index, key)
	return true
}

// Clear implements cache.Engine, resetting all four lists, the index, and
// the adaptive target p.
func (e *engine[K, V]) Clear() {
	e.index = make(map[K]*record[K, V])
	e.t1 = dlist.New[K]()
	e.t2 = dlist.New[K]()
	e.b1 = dlist.New[K]()
	e.b2 = dlist.New[K]()
	e.p = 0
}

// Size implements cache.Engine. Ghost entries are never counted: size
// reports only the live set, |T1| + |T2|.
func (e *engine[K, V]) Size() int {
	return e.t1.Len() + e.t2.Len()
}

// Capacity implements cache.Engine.
func (e *engine[K, V]) Capacity() int {
	return e.capacity
}
