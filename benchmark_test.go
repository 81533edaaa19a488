package berth

import (
	"fmt"
	"testing"
)

func BenchmarkResolve_Singleton(b *testing.B) {
	c := New()
	_ = c.Register("svc", disposableFactory("svc"), Singleton())
	_, _ = c.Resolve("svc")

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = c.Resolve("svc")
	}
}

func BenchmarkSessionCache_GetOrCreateHit(b *testing.B) {
	cache := NewSessionCache()
	factory := newTestDisposableFactory("svc")
	_, _ = cache.GetOrCreate("s1", "svc", factory)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = cache.GetOrCreate("s1", "svc", factory)
	}
}

func BenchmarkSessionCache_GetOrCreateHitParallel(b *testing.B) {
	cache := NewSessionCache()
	factory := newTestDisposableFactory("svc")
	_, _ = cache.GetOrCreate("s1", "svc", factory)

	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = cache.GetOrCreate("s1", "svc", factory)
		}
	})
}

func BenchmarkSessionCache_CreateAndCleanUp(b *testing.B) {
	cache := NewSessionCache()
	factory := newTestDisposableFactory("svc")

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		id := fmt.Sprintf("s%d", i)
		_, _ = cache.GetOrCreate(id, "svc", factory)
		_ = cache.CleanUp(id)
	}
}

func BenchmarkCompose(b *testing.B) {
	decorators := []Decorator{wrapWith("d1"), wrapWith("d2"), wrapWith("d3")}
	base := baseRinger{}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = Compose(base, decorators)
	}
}
