package arc

import (
	"fmt"
	"testing"

	"github.com/watt-toolkit/cachekit/pkg/cache"
)

func BenchmarkGet(b *testing.B) {
	c := New[string, int](10000, cache.WithMetrics(false))

	for i := 0; i < 1000; i++ {
		c.Put(fmt.Sprintf("key%d", i), i)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		c.Get("key500")
	}
}

func BenchmarkPut(b *testing.B) {
	c := New[string, int](100000, cache.WithMetrics(false))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		c.Put(fmt.Sprintf("key%d", i%10000), i)
	}
}

func BenchmarkPutGetMix(b *testing.B) {
	// ARC's four-list bookkeeping makes Put the more interesting path to
	// benchmark under churn (ghost-list promotion/demotion), unlike LRU's
	// flat single-list splice.
	c := New[string, int](1000, cache.WithMetrics(false))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		key := fmt.Sprintf("key%d", i%2000)
		if i%2 == 0 {
			c.Put(key, i)
		} else {
			c.Get(key)
		}
	}
}
