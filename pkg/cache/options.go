package cache

// Option configures a Guarded cache at construction time. Each engine
// package (lru, lfu, arc) accepts ...Option in its New and forwards it to
// NewGuarded, in the functional-options style of Krishna8167-tempuscache's
// options.go — chosen over a shared Config struct because the three
// engines have nothing policy-specific to configure beyond capacity, so a
// struct would carry dead fields for two of the three policies.
type Option func(*settings)

type settings struct {
	enableMetrics   bool
	enableHistogram bool
	exporter        Exporter
}

func defaultSettings() settings {
	return settings{enableMetrics: true}
}

// WithMetrics toggles counter tracking. Metrics are on by default;
// WithMetrics(false) skips every atomic increment on the hot path, for
// callers who have no use for hit/miss/eviction counts.
func WithMetrics(enabled bool) Option {
	return func(s *settings) { s.enableMetrics = enabled }
}

// WithLatencyHistogram enables the per-operation fixed-bucket nanosecond
// latency histogram. Disabled by default: observing costs an atomic
// increment per Put/Get, so a caller opts in.
func WithLatencyHistogram() Option {
	return func(s *settings) { s.enableHistogram = true }
}

// WithExporter attaches an external metrics collaborator. Registration
// happens once, at construction; after that the exporter is a
// fire-and-forget side channel that never affects cache semantics.
func WithExporter(e Exporter) Option {
	return func(s *settings) { s.exporter = e }
}

// Exporter is the minimal interface an external metrics registry must
// satisfy to observe a cache's counters. cachekit ships one real
// implementation, PrometheusExporter (metrics_prometheus.go, built only
// under -tags prometheus); the interface itself has no build tag so
// callers can implement their own fire-and-forget sink.
type Exporter interface {
	// Register attaches the exporter to its backing registry (e.g. calls
	// promauto.NewCounter). Called once by NewGuarded.
	Register() error

	// Observe is called after every Put/Get with the current snapshot and
	// the just-recorded operation latency; Remove and Clear do not carry a
	// latency sample and never call it. Implementations must not block or
	// panic; a slow or failing exporter must never affect cache semantics.
	Observe(snap Snapshot, opLatencyNS int64)
}
