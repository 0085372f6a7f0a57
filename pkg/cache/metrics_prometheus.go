//go:build prometheus

package cache

import (
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusExporter is a fire-and-forget side channel that pushes each
// counter/gauge/histogram observation to Prometheus under fixed metric
// names (cache_hits_total, cache_misses_total, cache_evictions_total,
// cache_size, cache_op_latency_ns), built behind a build tag so the
// dependency stays optional and wired through promauto.
//
// Build with `-tags prometheus` to include it; without the tag this file
// does not compile into the module at all, so a consumer who never wants
// Prometheus never pulls in client_golang's transitive dependency tree.
type PrometheusExporter struct {
	Namespace string
	Subsystem string

	registerer prometheus.Registerer

	hits       prometheus.Counter
	misses     prometheus.Counter
	evictions  prometheus.Counter
	size       prometheus.Gauge
	opLatency  prometheus.Histogram
	registered bool

	// prevHits/prevMisses/prevEvictions hold the last Snapshot value seen,
	// so Observe can Add the delta to a Prometheus Counter (which, unlike
	// Metrics' own atomics, only supports forward increments, not Set).
	prevHits      atomic.Int64
	prevMisses    atomic.Int64
	prevEvictions atomic.Int64
}

// NewPrometheusExporter returns an Exporter that publishes to reg (or the
// default global registry if reg is nil). namespace/subsystem follow
// Prometheus naming convention and may be empty.
func NewPrometheusExporter(reg prometheus.Registerer, namespace, subsystem string) *PrometheusExporter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &PrometheusExporter{Namespace: namespace, Subsystem: subsystem, registerer: reg}
}

// Register implements Exporter.
func (p *PrometheusExporter) Register() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("prometheus: %v", r)
		}
	}()

	factory := promauto.With(p.registerer)

	p.hits = factory.NewCounter(prometheus.CounterOpts{
		Namespace: p.Namespace, Subsystem: p.Subsystem,
		Name: "cache_hits_total", Help: "Total number of cache hits.",
	})
	p.misses = factory.NewCounter(prometheus.CounterOpts{
		Namespace: p.Namespace, Subsystem: p.Subsystem,
		Name: "cache_misses_total", Help: "Total number of cache misses.",
	})
	p.evictions = factory.NewCounter(prometheus.CounterOpts{
		Namespace: p.Namespace, Subsystem: p.Subsystem,
		Name: "cache_evictions_total", Help: "Total number of policy-driven evictions.",
	})
	p.size = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: p.Namespace, Subsystem: p.Subsystem,
		Name: "cache_size", Help: "Current number of live entries.",
	})
	p.opLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: p.Namespace, Subsystem: p.Subsystem,
		Name:    "cache_op_latency_ns",
		Help:    "Put/Get operation latency in nanoseconds.",
		Buckets: []float64{1e3, 2e3, 5e3, 1e4, 5e4, 1e5, 5e5, 1e6},
	})

	p.registered = true
	return nil
}

// Observe implements Exporter. Hits/misses/evictions are forwarded as
// deltas against the last observed snapshot (a Prometheus Counter only
// supports Add, not Set); size is a gauge and is set directly.
func (p *PrometheusExporter) Observe(snap Snapshot, opLatencyNS int64) {
	if !p.registered {
		return
	}

	if d := snap.Hits - p.prevHits.Swap(snap.Hits); d > 0 {
		p.hits.Add(float64(d))
	}
	if d := snap.Misses - p.prevMisses.Swap(snap.Misses); d > 0 {
		p.misses.Add(float64(d))
	}
	if d := snap.Evictions - p.prevEvictions.Swap(snap.Evictions); d > 0 {
		p.evictions.Add(float64(d))
	}

	p.size.Set(float64(snap.CurrentSize))
	p.opLatency.Observe(float64(opLatencyNS))
}
