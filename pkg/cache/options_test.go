package cache

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := defaultSettings()
	if !s.enableMetrics {
		t.Fatalf("enableMetrics = false, want true by default")
	}
	if s.enableHistogram {
		t.Fatalf("enableHistogram = true, want false by default")
	}
	if s.exporter != nil {
		t.Fatalf("exporter = %v, want nil by default", s.exporter)
	}
}

func TestOptionsApply(t *testing.T) {
	exp := &fakeExporter{}
	s := defaultSettings()
	for _, opt := range []Option{WithMetrics(false), WithLatencyHistogram(), WithExporter(exp)} {
		opt(&s)
	}

	if s.enableMetrics {
		t.Fatalf("enableMetrics = true, want false after WithMetrics(false)")
	}
	if !s.enableHistogram {
		t.Fatalf("enableHistogram = false, want true after WithLatencyHistogram()")
	}
	if s.exporter != exp {
		t.Fatalf("exporter not set to the supplied Exporter")
	}
}

func TestWithExporterEnablesHistogram(t *testing.T) {
	// NewGuarded enables the histogram whenever an Exporter is attached,
	// even without an explicit WithLatencyHistogram() — an Exporter's
	// Observe always receives an opLatencyNS sample regardless.
	eng := newFakeEngine(4)
	exp := &fakeExporter{}
	g := NewGuarded[int, int](eng, WithExporter(exp))

	if !g.metrics.histogram.enabled.Load() {
		t.Fatalf("histogram not enabled when an Exporter is attached")
	}
}
