// Package cache defines the uniform cache contract, the concurrency
// wrapper that serializes access to a policy engine, and the metrics
// every engine shares. The three replacement policies themselves live in
// sibling packages lru, lfu, and arc, each of which implements Engine and
// hands it to NewGuarded.
//
// This split mirrors capacitor/pkg/cache/memory.Cache[K, V], which bundles
// a single eviction mode, its RWMutex, and its metrics into one struct;
// cachekit pulls the mutex and metrics out into Guarded so the same
// wrapper serves all three policies without duplicating the locking and
// counter-update logic three times.
package cache

import (
	"fmt"
	"sync"
	"time"
)

// Cache is the capability set every engine exposes. All three
// constructors (lru.New, lfu.New, arc.New) return a *Guarded[K, V], which
// satisfies this interface; it exists so callers can depend on the
// contract rather than a concrete policy.
type Cache[K comparable, V any] interface {
	// Put inserts or updates key. It returns false only when the cache's
	// capacity is zero and key was not already present.
	Put(key K, value V) bool

	// Get returns the value stored under key and true on a hit, or the
	// zero value and false on a miss.
	Get(key K) (V, bool)

	// Remove deletes key if present, reporting whether it was.
	Remove(key K) bool

	// Clear empties the cache. Metrics counters are preserved.
	Clear()

	// Size reports the current number of live entries.
	Size() int

	// Capacity reports the fixed bound passed to the constructor.
	Capacity() int

	// Metrics returns a snapshot of the cache's counters.
	Metrics() Snapshot
}

// Engine is the unsynchronized core every replacement policy implements.
// Guarded is the only thing that ever calls these methods, always while
// holding its mutex — an Engine implementation is not expected to be safe
// for concurrent use on its own — a single serialization primitive per
// engine is the whole concurrency story.
type Engine[K comparable, V any] interface {
	// Put mirrors Cache.Put but additionally reports whether this was a
	// new admission (isNew) versus a value update of an existing key, and
	// whether an existing live entry had to be evicted to make room.
	// evicted is never true when isNew is false: an in-place update of an
	// existing key is never an eviction.
	Put(key K, value V) (ok, isNew, evicted bool)
	Get(key K) (V, bool)
	Remove(key K) bool
	Clear()
	Size() int
	Capacity() int
}

// Guarded wraps an Engine with a single reader/writer serialization
// primitive, plus the Metrics aggregate. Get takes the writer side because
// every policy reorders internal lists on a hit.
type Guarded[K comparable, V any] struct {
	mu       sync.RWMutex
	eng      Engine[K, V]
	metrics  *Metrics
	settings settings

	exporterErr error
}

// NewGuarded builds the concurrency + metrics wrapper around eng. Engine
// packages call this from their New so callers never construct a Guarded
// directly.
func NewGuarded[K comparable, V any](eng Engine[K, V], opts ...Option) *Guarded[K, V] {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	m := newMetrics()
	if s.enableHistogram || s.exporter != nil {
		m.histogram.enable()
	}

	g := &Guarded[K, V]{eng: eng, metrics: m, settings: s}

	if s.exporter != nil {
		if err := s.exporter.Register(); err != nil {
			g.exporterErr = fmt.Errorf("%w: %v", ErrExporterRegistration, err)
			g.settings.exporter = nil
		}
	}

	return g
}

// ExporterError reports whether the Exporter supplied via WithExporter
// failed to register. A failed exporter is simply disabled — failure to
// export never affects cache semantics — this accessor exists only so a
// caller who cares can notice.
func (c *Guarded[K, V]) ExporterError() error {
	return c.exporterErr
}

// Put implements Cache.
func (c *Guarded[K, V]) Put(key K, value V) bool {
	start := time.Now()

	c.mu.Lock()
	ok, isNew, evicted := c.eng.Put(key, value)
	if c.settings.enableMetrics {
		if ok && isNew {
			c.metrics.incrementSize()
		}
		if evicted {
			c.metrics.decrementSize()
			c.metrics.recordEviction()
		}
	}
	c.mu.Unlock()

	c.afterOp(start)
	return ok
}

// Get implements Cache.
func (c *Guarded[K, V]) Get(key K) (V, bool) {
	start := time.Now()

	c.mu.Lock()
	value, hit := c.eng.Get(key)
	if c.settings.enableMetrics {
		if hit {
			c.metrics.recordHit()
		} else {
			c.metrics.recordMiss()
		}
	}
	c.mu.Unlock()

	c.afterOp(start)
	return value, hit
}

// Remove implements Cache.
func (c *Guarded[K, V]) Remove(key K) bool {
	c.mu.Lock()
	ok := c.eng.Remove(key)
	if ok && c.settings.enableMetrics {
		c.metrics.decrementSize()
		c.metrics.recordRemoval()
	}
	c.mu.Unlock()
	return ok
}

// Clear implements Cache. Metrics counters (other than the size gauge)
// are preserved across Clear.
func (c *Guarded[K, V]) Clear() {
	c.mu.Lock()
	c.eng.Clear()
	c.mu.Unlock()

	if c.settings.enableMetrics {
		c.metrics.setSize(0)
	}
}

// Size implements Cache. It takes the shared (reader) side of the
// primitive.
func (c *Guarded[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.eng.Size()
}

// Capacity implements Cache. The bound is fixed at construction, so no
// synchronization is needed to read it.
func (c *Guarded[K, V]) Capacity() int {
	return c.eng.Capacity()
}

// Metrics implements Cache. Reads are lock-free atomics, not linearized
// with Put/Get/Remove/Clear.
func (c *Guarded[K, V]) Metrics() Snapshot {
	return c.metrics.Snapshot()
}

// afterOp records the Put/Get latency sample and, if an Exporter is
// attached, forwards the current snapshot to it. Must be called without
// c.mu held — an Exporter must never be invoked while holding the
// engine's lock.
func (c *Guarded[K, V]) afterOp(start time.Time) {
	elapsed := time.Since(start)
	c.metrics.observeLatency(elapsed)

	if c.settings.exporter != nil {
		c.settings.exporter.Observe(c.metrics.Snapshot(), elapsed.Nanoseconds())
	}
}
