package ttlcache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultSweepInterval is how often the background sweep scans for expired
// entries when no custom interval is configured.
const DefaultSweepInterval = 5 * time.Minute

// Config carries the cache tunables, loadable via pkg/config.
type Config struct {
	SweepInterval time.Duration `env:"ENTITLEMENTS_CACHE_SWEEP_INTERVAL" envDefault:"5m"`
}

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

// expiredAt reports whether the entry is logically absent at the given time,
// regardless of whether the sweep has physically removed it yet.
func (e entry) expiredAt(now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// Cache is a thread-safe in-memory TTL cache.
// Construct with New and release the sweep goroutine with Stop.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
	stop    chan struct{}
	stopped sync.Once
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	sweepInterval time.Duration
	clock         func() time.Time
}

// WithSweepInterval overrides the background sweep period.
// A non-positive interval disables the sweep entirely; expiry is still
// enforced on every Get.
func WithSweepInterval(d time.Duration) Option {
	return func(o *options) { o.sweepInterval = d }
}

// WithConfig applies the sweep interval from an env-loaded Config.
// A zero interval keeps the default.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		if cfg.SweepInterval != 0 {
			o.sweepInterval = cfg.SweepInterval
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// New creates a Cache and starts its background sweep.
func New(opts ...Option) *Cache {
	o := options{
		sweepInterval: DefaultSweepInterval,
		clock:         time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Cache{
		entries: make(map[string]entry),
		now:     o.clock,
		stop:    make(chan struct{}),
	}

	if o.sweepInterval > 0 {
		go c.sweepLoop(o.sweepInterval)
	}

	return c
}

// Get returns the value stored under key. An entry past its TTL is evicted
// and reported as absent, so callers never observe stale values even between
// sweeps.
func (c *Cache) Get(ctx context.Context, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if e.expiredAt(c.now()) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the given TTL, overwriting any existing
// entry for the key.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:    value,
		storedAt: c.now(),
		ttl:      ttl,
	}
	return nil
}

// Delete removes a key and reports whether it was present.
func (c *Cache) Delete(ctx context.Context, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Invalidate deletes every key containing any of the given substrings.
// Substring matching is intentionally coarse so that callers can purge
// families of derived keys without enumerating them. Empty patterns are
// ignored, matching the Redis-backed Store. Returns the number of entries
// removed; invalidating keys that do not exist is a no-op.
func (c *Cache) Invalidate(ctx context.Context, patterns ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		for _, pattern := range patterns {
			if pattern == "" {
				continue
			}
			if strings.Contains(key, pattern) {
				delete(c.entries, key)
				removed++
				break
			}
		}
	}
	return removed
}

// Len returns the number of physically stored entries, including entries
// past their TTL that the sweep has not yet removed.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stop terminates the background sweep. Safe to call more than once.
// The cache remains usable after Stop; only periodic eviction ceases.
func (c *Cache) Stop() {
	c.stopped.Do(func() { close(c.stop) })
}

func (c *Cache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

// sweep evicts expired entries to bound memory. Get does not rely on it.
func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if e.expiredAt(now) {
			delete(c.entries, key)
		}
	}
}
