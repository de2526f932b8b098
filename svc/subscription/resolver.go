package subscription

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/batchline/entitlements/pkg/ttlcache"
)

// Default engine tunables. All of them are overridable via Config or options.
const (
	// DefaultCacheTTL bounds billing-state staleness to half a minute while
	// still absorbing bursty reads within one request chain.
	DefaultCacheTTL = 30 * time.Second

	// DefaultGracePeriod is the window after currentPeriodEnd during which
	// access is retained.
	DefaultGracePeriod = 7 * 24 * time.Hour

	// DefaultWarningDays is the pre-expiry threshold for billing warnings.
	DefaultWarningDays = 2
)

// Config carries the engine's temporal tunables, loadable via pkg/config.
type Config struct {
	CacheTTL    time.Duration `env:"ENTITLEMENTS_SUBSCRIPTION_CACHE_TTL" envDefault:"30s"`
	GracePeriod time.Duration `env:"ENTITLEMENTS_GRACE_PERIOD" envDefault:"168h"`
	WarningDays int           `env:"ENTITLEMENTS_WARNING_DAYS" envDefault:"2"`
}

// CacheKey returns the cache key for a tenant's subscription record. The key
// embeds the tenant id so substring invalidation by tenant id reaches it.
func CacheKey(tenantID uuid.UUID) string {
	return "subscription:" + tenantID.String()
}

// Resolver computes tenant standings from stored records and the clock.
type Resolver struct {
	store       Store
	cache       ttlcache.Store
	cacheTTL    time.Duration
	grace       time.Duration
	warningDays int
	logger      *slog.Logger
	now         func() time.Time
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithConfig applies the tunables from an env-loaded Config.
func WithConfig(cfg Config) ResolverOption {
	return func(r *Resolver) {
		if cfg.CacheTTL > 0 {
			r.cacheTTL = cfg.CacheTTL
		}
		if cfg.GracePeriod > 0 {
			r.grace = cfg.GracePeriod
		}
		if cfg.WarningDays > 0 {
			r.warningDays = cfg.WarningDays
		}
	}
}

// WithCacheTTL overrides the record cache TTL.
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(r *Resolver) { r.cacheTTL = ttl }
}

// WithGracePeriod overrides the grace window length.
func WithGracePeriod(grace time.Duration) ResolverOption {
	return func(r *Resolver) { r.grace = grace }
}

// WithWarningDays overrides the pre-expiry warning threshold.
func WithWarningDays(days int) ResolverOption {
	return func(r *Resolver) { r.warningDays = days }
}

// WithLogger sets the logger used when resolution errors are collapsed into
// denials.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// WithClock overrides the time source. Intended for tests.
func WithClock(clock func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = clock }
}

// NewResolver creates a Resolver over the given store and cache.
// Pass ttlcache.NoOpStore{} to disable caching.
func NewResolver(store Store, cache ttlcache.Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:       store,
		cache:       cache,
		cacheTTL:    DefaultCacheTTL,
		grace:       DefaultGracePeriod,
		warningDays: DefaultWarningDays,
		logger:      slog.Default(),
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup resolves the tenant's standing, surfacing fetch errors to callers
// that want to distinguish them. The returned standing is fail-closed even
// when err is non-nil, so ignoring the error is always safe.
func (r *Resolver) Lookup(ctx context.Context, tenantID uuid.UUID) (Standing, error) {
	rec, err := ttlcache.GetOrFetch(ctx, r.cache, CacheKey(tenantID), r.cacheTTL,
		func(ctx context.Context) (*Record, error) {
			rec, err := r.store.FetchSubscription(ctx, tenantID)
			if errors.Is(err, ErrNotFound) {
				// Absence is cached too: a tenant without a record keeps
				// hammering the store otherwise.
				return nil, nil
			}
			return rec, err
		})
	if err != nil {
		return NoAccess(), err
	}

	return StandingAt(rec, r.now(), r.grace), nil
}

// Resolve is the hot-path entry point: it collapses every error into the
// fail-closed NoAccess standing, logging the cause. Entitlement checks must
// never interpret "unknown" as "active".
func (r *Resolver) Resolve(ctx context.Context, tenantID uuid.UUID) Standing {
	standing, err := r.Lookup(ctx, tenantID)
	if err != nil {
		r.logger.WarnContext(ctx, "subscription resolution failed, denying access",
			slog.String("tenant_id", tenantID.String()),
			slog.Any("error", err),
		)
		return NoAccess()
	}
	return standing
}
