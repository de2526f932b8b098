package ttlcache

import (
	"context"
	"time"
)

// Store is the cache contract shared by the in-memory Cache and RedisStore.
// Implementations must enforce per-entry TTLs on read, not only on sweep.
type Store interface {
	// Get returns the cached value for key, or false if the key is absent
	// or its TTL has lapsed.
	Get(ctx context.Context, key string) (any, bool)

	// Set stores value under key with the given TTL, overwriting any
	// existing entry.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes a key and reports whether it was present.
	Delete(ctx context.Context, key string) bool

	// Invalidate deletes every key containing any of the given substrings
	// and returns the number of entries removed. Unknown patterns are a
	// silent no-op.
	Invalidate(ctx context.Context, patterns ...string) int
}

// NoOpStore disables caching. Every Get is a miss and every write is
// discarded, which makes it useful in tests and single-shot tooling.
type NoOpStore struct{}

func (NoOpStore) Get(ctx context.Context, key string) (any, bool) { return nil, false }

func (NoOpStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (NoOpStore) Delete(ctx context.Context, key string) bool { return false }

func (NoOpStore) Invalidate(ctx context.Context, patterns ...string) int { return 0 }
