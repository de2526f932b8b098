package subscription_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batchline/entitlements/pkg/ttlcache"
	"github.com/batchline/entitlements/svc/subscription"
)

// countingStore wraps a Store and counts fetches.
type countingStore struct {
	mu      sync.Mutex
	inner   subscription.Store
	fetches int
	err     error
}

func (s *countingStore) FetchSubscription(ctx context.Context, tenantID uuid.UUID) (*subscription.Record, error) {
	s.mu.Lock()
	s.fetches++
	err := s.err
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return s.inner.FetchSubscription(ctx, tenantID)
}

func (s *countingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func (s *countingStore) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func newCache(t *testing.T) *ttlcache.Cache {
	t.Helper()
	c := ttlcache.New(ttlcache.WithSweepInterval(0))
	t.Cleanup(c.Stop)
	return c
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("active subscription resolves active", func(t *testing.T) {
		t.Parallel()

		rec := record(subscription.StatusActive, periodEnd(30*24*time.Hour))
		store := subscription.NewMemStore(*rec)

		r := subscription.NewResolver(store, newCache(t),
			subscription.WithClock(func() time.Time { return testNow }))

		st := r.Resolve(ctx, rec.TenantID)
		assert.True(t, st.Active)
		assert.Equal(t, "pro", st.PlanID)
	})

	t.Run("missing record fails closed", func(t *testing.T) {
		t.Parallel()

		r := subscription.NewResolver(subscription.NewMemStore(), newCache(t))

		st := r.Resolve(ctx, uuid.New())
		assert.False(t, st.Active)
		assert.True(t, st.Expired)
		assert.Empty(t, st.PlanID)
	})

	t.Run("store error fails closed", func(t *testing.T) {
		t.Parallel()

		store := &countingStore{inner: subscription.NewMemStore()}
		store.fail(subscription.ErrStoreUnavailable)

		r := subscription.NewResolver(store, newCache(t))

		st := r.Resolve(ctx, uuid.New())
		assert.False(t, st.Active)
		assert.True(t, st.Expired)
	})

	t.Run("lookup surfaces the error with a fail-closed standing", func(t *testing.T) {
		t.Parallel()

		store := &countingStore{inner: subscription.NewMemStore()}
		store.fail(subscription.ErrStoreUnavailable)

		r := subscription.NewResolver(store, newCache(t))

		st, err := r.Lookup(ctx, uuid.New())
		assert.ErrorIs(t, err, subscription.ErrStoreUnavailable)
		assert.False(t, st.Active)
	})
}

func TestResolver_Caching(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("repeated resolutions hit the store once", func(t *testing.T) {
		t.Parallel()

		rec := record(subscription.StatusActive, periodEnd(30*24*time.Hour))
		store := &countingStore{inner: subscription.NewMemStore(*rec)}

		r := subscription.NewResolver(store, newCache(t),
			subscription.WithClock(func() time.Time { return testNow }))

		for i := 0; i < 5; i++ {
			r.Resolve(ctx, rec.TenantID)
		}
		assert.Equal(t, 1, store.count())
	})

	t.Run("absence is cached", func(t *testing.T) {
		t.Parallel()

		store := &countingStore{inner: subscription.NewMemStore()}
		r := subscription.NewResolver(store, newCache(t))

		tenantID := uuid.New()
		for i := 0; i < 5; i++ {
			st := r.Resolve(ctx, tenantID)
			assert.False(t, st.Active)
		}
		assert.Equal(t, 1, store.count())
	})

	t.Run("standing is recomputed against a fresh clock on every call", func(t *testing.T) {
		t.Parallel()

		// Period ends in 1h, grace 7 days. Cache the record once, then jump
		// the clock past grace: the cached record must not keep the tenant
		// active, because only the record is cached, never the standing.
		rec := record(subscription.StatusActive, periodEnd(time.Hour))
		store := &countingStore{inner: subscription.NewMemStore(*rec)}

		now := testNow
		var mu sync.Mutex
		clock := func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return now
		}

		r := subscription.NewResolver(store, newCache(t),
			subscription.WithClock(clock),
			subscription.WithCacheTTL(time.Hour)) // deliberately long

		require.True(t, r.Resolve(ctx, rec.TenantID).Active)

		mu.Lock()
		now = testNow.Add(9 * 24 * time.Hour) // past period end + grace
		mu.Unlock()

		st := r.Resolve(ctx, rec.TenantID)
		assert.False(t, st.Active)
		assert.True(t, st.Expired)
		assert.Equal(t, 1, store.count(), "record still served from cache")
	})

	t.Run("invalidation forces a refetch", func(t *testing.T) {
		t.Parallel()

		rec := record(subscription.StatusActive, periodEnd(30*24*time.Hour))
		mem := subscription.NewMemStore(*rec)
		store := &countingStore{inner: mem}
		cache := newCache(t)

		r := subscription.NewResolver(store, cache,
			subscription.WithClock(func() time.Time { return testNow }))

		require.True(t, r.Resolve(ctx, rec.TenantID).Active)

		// Billing cancels the subscription and purges the tenant's keys.
		cancelled := *rec
		cancelled.Status = subscription.StatusCancelled
		mem.Put(cancelled)
		cache.Invalidate(ctx, rec.TenantID.String())

		st := r.Resolve(ctx, rec.TenantID)
		assert.False(t, st.Active)
		assert.Equal(t, 2, store.count())
	})

	t.Run("noop cache fetches every time", func(t *testing.T) {
		t.Parallel()

		rec := record(subscription.StatusActive, periodEnd(30*24*time.Hour))
		store := &countingStore{inner: subscription.NewMemStore(*rec)}

		r := subscription.NewResolver(store, ttlcache.NoOpStore{},
			subscription.WithClock(func() time.Time { return testNow }))

		for i := 0; i < 3; i++ {
			r.Resolve(ctx, rec.TenantID)
		}
		assert.Equal(t, 3, store.count())
	})
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	key := subscription.CacheKey(id)

	assert.Equal(t, "subscription:6ba7b810-9dad-11d1-80b4-00c04fd430c8", key)
	assert.Contains(t, key, id.String(), "tenant id must be reachable by substring invalidation")
}

func TestResolver_ConfigDefaults(t *testing.T) {
	t.Parallel()

	// Zero-valued config fields must not wipe out the defaults.
	rec := record(subscription.StatusActive, periodEnd(-3*24*time.Hour)) // in default grace
	store := subscription.NewMemStore(*rec)

	r := subscription.NewResolver(store, newCache(t),
		subscription.WithConfig(subscription.Config{}),
		subscription.WithClock(func() time.Time { return testNow }))

	st := r.Resolve(context.Background(), rec.TenantID)
	assert.True(t, st.InGracePeriod, "default 7-day grace window still applies")
}
