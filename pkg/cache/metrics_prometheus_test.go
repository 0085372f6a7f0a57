//go:build prometheus

package cache

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestPrometheusExporterRegistersUnderNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	exp := NewPrometheusExporter(reg, "cachekit", "test")

	if err := exp.Register(); err != nil {
		t.Fatalf("Register() = %v, want nil", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	wantNames := map[string]bool{
		"cachekit_test_cache_hits_total":      false,
		"cachekit_test_cache_misses_total":     false,
		"cachekit_test_cache_evictions_total":  false,
		"cachekit_test_cache_size":             false,
		"cachekit_test_cache_op_latency_ns":    false,
	}
	for _, f := range families {
		if _, ok := wantNames[f.GetName()]; ok {
			wantNames[f.GetName()] = true
		}
	}
	for name, found := range wantNames {
		if !found {
			t.Errorf("metric %q not registered", name)
		}
	}
}

func TestPrometheusExporterObserveDeltas(t *testing.T) {
	reg := prometheus.NewRegistry()
	exp := NewPrometheusExporter(reg, "", "")
	if err := exp.Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}

	exp.Observe(Snapshot{Hits: 3, Misses: 1, Evictions: 0, CurrentSize: 3}, 1000)
	exp.Observe(Snapshot{Hits: 5, Misses: 1, Evictions: 1, CurrentSize: 4}, 2000)

	if got := counterValue(t, exp.hits); got != 5 {
		t.Fatalf("hits counter = %v, want 5 (cumulative, not last delta)", got)
	}
	if got := counterValue(t, exp.misses); got != 1 {
		t.Fatalf("misses counter = %v, want 1", got)
	}
	if got := counterValue(t, exp.evictions); got != 1 {
		t.Fatalf("evictions counter = %v, want 1", got)
	}
}

func TestPrometheusExporterObserveNoopBeforeRegister(t *testing.T) {
	exp := NewPrometheusExporter(prometheus.NewRegistry(), "", "")
	// Must not panic on a nil prometheus.Counter when unregistered.
	exp.Observe(Snapshot{Hits: 1}, 500)
}
