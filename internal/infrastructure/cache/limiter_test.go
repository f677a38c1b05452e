package cache

import (
	"sync"
	"testing"
	"time"
)

func TestLimiterCache_Allow(t *testing.T) {
	tests := []struct {
		name      string
		perMinute int
		burst     int
		requests  int
		wantAllow int
	}{
		{name: "within burst", perMinute: 60, burst: 5, requests: 3, wantAllow: 3},
		{name: "burst exhausted", perMinute: 60, burst: 2, requests: 5, wantAllow: 2},
		{name: "burst defaults to per-minute", perMinute: 4, burst: 0, requests: 6, wantAllow: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewLimiterCache(tt.perMinute, tt.burst, time.Minute)
			defer cache.Close()

			fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
			cache.now = func() time.Time { return fixed }

			allowed := 0
			for i := 0; i < tt.requests; i++ {
				if cache.Allow("10.0.0.1") {
					allowed++
				}
			}
			if allowed != tt.wantAllow {
				t.Errorf("allowed = %d, want %d", allowed, tt.wantAllow)
			}
		})
	}
}

func TestLimiterCache_KeysAreIndependent(t *testing.T) {
	cache := NewLimiterCache(60, 1, time.Minute)
	defer cache.Close()

	if !cache.Allow("10.0.0.1") {
		t.Fatal("first request from 10.0.0.1 should be allowed")
	}
	if cache.Allow("10.0.0.1") {
		t.Error("second immediate request from 10.0.0.1 should be limited")
	}
	if !cache.Allow("10.0.0.2") {
		t.Error("first request from 10.0.0.2 should be allowed")
	}
	if cache.Size() != 2 {
		t.Errorf("Size() = %d, want 2", cache.Size())
	}
}

func TestLimiterCache_EvictIdle(t *testing.T) {
	cache := NewLimiterCache(60, 1, time.Minute)
	defer cache.Close()

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	current := start
	cache.now = func() time.Time { return current }

	cache.Allow("idle")
	current = start.Add(50 * time.Second)
	cache.Allow("active")

	current = start.Add(90 * time.Second)
	cache.evictIdle()

	if cache.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 after eviction", cache.Size())
	}
	if _, ok := cache.data["active"]; !ok {
		t.Error("active visitor should survive eviction")
	}
}

func TestLimiterCache_ConcurrentAccess(t *testing.T) {
	cache := NewLimiterCache(6000, 1000, time.Minute)
	defer cache.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				cache.Allow(string(rune('a' + id%5)))
			}
		}(i)
	}
	wg.Wait()

	if cache.Size() != 5 {
		t.Errorf("Size() = %d, want 5", cache.Size())
	}
}

func TestLimiterCache_CloseIsIdempotent(t *testing.T) {
	cache := NewLimiterCache(60, 1, time.Minute)
	cache.Close()
	cache.Close()
}
