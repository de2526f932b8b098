// Package ttlcache provides a process-wide key/value cache with per-entry
// expiry, substring-pattern invalidation and a read-through helper.
//
// Unlike an LRU, entries are bounded by time, not by count: every entry
// carries its own TTL, expiry is enforced lazily on every Get, and a
// background sweep evicts expired entries periodically purely to bound
// memory. Correctness never depends on sweep timing.
//
// The cache has an explicit lifecycle: construct it at process start and stop
// the sweep goroutine at shutdown.
//
//	cache := ttlcache.New()
//	defer cache.Stop()
//
//	cache.Set(ctx, "subscription:"+tenantID, record, 30*time.Second)
//
// GetOrFetch is the canonical read-through path:
//
//	record, err := ttlcache.GetOrFetch(ctx, cache, key, 30*time.Second,
//	    func(ctx context.Context) (*Record, error) {
//	        return store.FetchSubscription(ctx, tenantID)
//	    })
//
// Invalidation is deliberately coarse: Invalidate deletes every key that
// contains any of the given substrings, so writers can purge whole families
// of derived keys (for example, every key containing a tenant id) without
// enumerating them.
//
// RedisStore implements the same Store contract on top of go-redis for
// deployments that share one cache across processes.
package ttlcache
