package ttlcache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batchline/entitlements/pkg/ttlcache"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCache(t *testing.T, clock *fakeClock) *ttlcache.Cache {
	t.Helper()
	c := ttlcache.New(
		ttlcache.WithClock(clock.Now),
		ttlcache.WithSweepInterval(0), // expiry on Get only
	)
	t.Cleanup(c.Stop)
	return c
}

func TestCache_SetGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		c := newTestCache(t, clock)

		require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

		got, ok := c.Get(ctx, "k")
		require.True(t, ok)
		assert.Equal(t, "v", got)
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t, newFakeClock())

		_, ok := c.Get(ctx, "missing")
		assert.False(t, ok)
	})

	t.Run("overwrite replaces value and ttl", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		c := newTestCache(t, clock)

		require.NoError(t, c.Set(ctx, "k", "old", time.Second))
		require.NoError(t, c.Set(ctx, "k", "new", time.Hour))

		clock.Advance(time.Minute)

		got, ok := c.Get(ctx, "k")
		require.True(t, ok)
		assert.Equal(t, "new", got)
	})

	t.Run("entry absent after ttl lapses", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		c := newTestCache(t, clock)

		require.NoError(t, c.Set(ctx, "k", "v", 30*time.Second))

		clock.Advance(31 * time.Second)

		_, ok := c.Get(ctx, "k")
		assert.False(t, ok)
		// Lazy eviction removed the entry physically too.
		assert.Equal(t, 0, c.Len())
	})

	t.Run("entry still present exactly at ttl boundary", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		c := newTestCache(t, clock)

		require.NoError(t, c.Set(ctx, "k", "v", 30*time.Second))

		clock.Advance(30 * time.Second)

		_, ok := c.Get(ctx, "k")
		assert.True(t, ok)
	})
}

func TestCache_ExpiryWallClock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := ttlcache.New(ttlcache.WithSweepInterval(0))
	t.Cleanup(c.Stop)

	require.NoError(t, c.Set(ctx, "k", 42, 10*time.Millisecond))

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, 42, got)

	time.Sleep(25 * time.Millisecond)

	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestCache_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestCache(t, newFakeClock())

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	assert.True(t, c.Delete(ctx, "k"))
	assert.False(t, c.Delete(ctx, "k"), "second delete reports absence")

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	seed := func(t *testing.T) *ttlcache.Cache {
		t.Helper()
		c := newTestCache(t, newFakeClock())
		require.NoError(t, c.Set(ctx, "subscription:tenant-a", 1, time.Minute))
		require.NoError(t, c.Set(ctx, "limits:tenant-a", 2, time.Minute))
		require.NoError(t, c.Set(ctx, "subscription:tenant-b", 3, time.Minute))
		return c
	}

	t.Run("substring match removes key families", func(t *testing.T) {
		t.Parallel()

		c := seed(t)

		removed := c.Invalidate(ctx, "tenant-a")
		assert.Equal(t, 2, removed)

		_, ok := c.Get(ctx, "subscription:tenant-b")
		assert.True(t, ok, "other tenants untouched")
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		c := seed(t)

		assert.Equal(t, 2, c.Invalidate(ctx, "tenant-a"))
		assert.Equal(t, 0, c.Invalidate(ctx, "tenant-a"))
		assert.Equal(t, 1, c.Len())
	})

	t.Run("unknown pattern is a no-op", func(t *testing.T) {
		t.Parallel()

		c := seed(t)

		assert.Equal(t, 0, c.Invalidate(ctx, "tenant-z"))
		assert.Equal(t, 3, c.Len())
	})

	t.Run("empty pattern matches nothing", func(t *testing.T) {
		t.Parallel()

		c := seed(t)

		assert.Equal(t, 0, c.Invalidate(ctx, ""))
		assert.Equal(t, 3, c.Len())

		// Mixed with real patterns the empty one is simply ignored.
		assert.Equal(t, 2, c.Invalidate(ctx, "", "tenant-a"))
	})

	t.Run("multiple patterns counted once per key", func(t *testing.T) {
		t.Parallel()

		c := seed(t)

		removed := c.Invalidate(ctx, "subscription:", "tenant-a")
		assert.Equal(t, 3, removed)
		assert.Equal(t, 0, c.Len())
	})
}

func TestCache_Sweep(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := ttlcache.New(ttlcache.WithSweepInterval(10 * time.Millisecond))
	t.Cleanup(c.Stop)

	require.NoError(t, c.Set(ctx, "short", 1, time.Millisecond))
	require.NoError(t, c.Set(ctx, "long", 2, time.Hour))

	assert.Eventually(t, func() bool {
		return c.Len() == 1
	}, time.Second, 5*time.Millisecond, "sweep evicts expired entries without a Get")

	_, ok := c.Get(ctx, "long")
	assert.True(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := ttlcache.New(ttlcache.WithSweepInterval(time.Millisecond))
	t.Cleanup(c.Stop)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := []string{"a", "b", "c", "d"}[n%4]
			for j := 0; j < 200; j++ {
				_ = c.Set(ctx, key, n, time.Millisecond*5)
				c.Get(ctx, key)
				c.Invalidate(ctx, "a")
				c.Delete(ctx, "b")
			}
		}(i)
	}
	wg.Wait()
}

func TestNoOpStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var s ttlcache.NoOpStore

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))

	_, ok := s.Get(ctx, "k")
	assert.False(t, ok)
	assert.False(t, s.Delete(ctx, "k"))
	assert.Equal(t, 0, s.Invalidate(ctx, "k"))
}
