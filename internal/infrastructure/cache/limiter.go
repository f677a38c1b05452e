package cache

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitor is one client's token bucket and when it was last used
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LimiterCache holds a rate limiter per client key and evicts idle ones after a TTL
type LimiterCache struct {
	data  map[string]*visitor
	mutex sync.Mutex
	limit rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// NewLimiterCache creates a cache allowing perMinute requests per key with the given burst
func NewLimiterCache(perMinute, burst int, ttl time.Duration) *LimiterCache {
	if perMinute <= 0 {
		perMinute = 100
	}
	if burst <= 0 {
		burst = perMinute
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	cache := &LimiterCache{
		data:  make(map[string]*visitor),
		limit: rate.Limit(float64(perMinute) / 60.0),
		burst: burst,
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}

	// Start cleanup goroutine to remove idle visitors
	go cache.cleanupLoop(ttl)

	return cache
}

// Allow reports whether the client identified by key may make a request now
func (c *LimiterCache) Allow(key string) bool {
	c.mutex.Lock()
	v, exists := c.data[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.data[key] = v
	}
	now := c.now()
	v.lastSeen = now
	c.mutex.Unlock()

	return v.limiter.AllowN(now, 1)
}

// cleanupLoop evicts idle visitors every interval until Close is called
func (c *LimiterCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictIdle()
		case <-c.stop:
			return
		}
	}
}

// evictIdle removes visitors not seen within the TTL
func (c *LimiterCache) evictIdle() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	cutoff := c.now().Add(-c.ttl)
	for key, v := range c.data {
		if v.lastSeen.Before(cutoff) {
			delete(c.data, key)
		}
	}
}

// Size returns the number of tracked clients (for debugging/monitoring)
func (c *LimiterCache) Size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.data)
}

// Close stops the cleanup goroutine
func (c *LimiterCache) Close() {
	c.once.Do(func() { close(c.stop) })
}
