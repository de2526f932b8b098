package ttlcache

import (
	"context"
	"encoding/json"
	"time"
)

// GetOrFetch returns the cached value for key if present and fresh; otherwise
// it invokes producer, stores the result with the given TTL and returns it.
//
// The producer runs at most once per call. Concurrent callers missing on the
// same key may each run their own producer; the runs are expected to be
// idempotent and the last write wins, so the race costs redundant work but
// never correctness.
//
// A cached value of the wrong type is treated as a miss and overwritten.
// Values stored as raw bytes (the Redis backend) are decoded from JSON.
// A failed cache write never fails the read: the freshly produced value is
// returned regardless.
func GetOrFetch[V any](ctx context.Context, store Store, key string, ttl time.Duration, producer func(context.Context) (V, error)) (V, error) {
	if cached, ok := store.Get(ctx, key); ok {
		switch v := cached.(type) {
		case V:
			return v, nil
		case []byte:
			var decoded V
			if err := json.Unmarshal(v, &decoded); err == nil {
				return decoded, nil
			}
		}
		// Wrong type or undecodable: fall through and recompute.
	}

	value, err := producer(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	_ = store.Set(ctx, key, value, ttl)
	return value, nil
}
