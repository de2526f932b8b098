package ttlcache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisScanBatch = 100

// RedisStore implements Store on top of a Redis client so that several
// processes can share one cache. Values are JSON-encoded; expiry is delegated
// to Redis TTLs, so there is no sweep to run or stop.
//
// All operations are best-effort: a Redis failure reads as a miss and writes
// are dropped, which callers already tolerate via the read-through path.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing Redis client. All keys are namespaced with
// prefix to keep the cache apart from other users of the same database.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Get returns the raw JSON bytes stored under key. Decoding into the caller's
// type happens in GetOrFetch; undecodable payloads count as a miss there.
func (s *RedisStore) Get(ctx context.Context, key string) (any, bool) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set stores the JSON encoding of value with a native Redis TTL.
func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, b, ttl).Err()
}

// Delete removes a key and reports whether it was present.
func (s *RedisStore) Delete(ctx context.Context, key string) bool {
	n, err := s.client.Del(ctx, s.prefix+key).Result()
	return err == nil && n > 0
}

// Invalidate deletes every key containing any of the given substrings using
// SCAN, so it never blocks the server the way KEYS would. Returns the number
// of keys removed; scan or delete errors leave the remaining keys in place to
// lapse via their own TTLs.
func (s *RedisStore) Invalidate(ctx context.Context, patterns ...string) int {
	removed := 0
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		iter := s.client.Scan(ctx, 0, s.prefix+"*"+pattern+"*", redisScanBatch).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			continue
		}
		if len(keys) == 0 {
			continue
		}

		n, err := s.client.Del(ctx, keys...).Result()
		if err == nil {
			removed += int(n)
		}
	}
	return removed
}
