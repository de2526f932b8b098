package entitlement

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/batchline/entitlements/pkg/ttlcache"
	"github.com/batchline/entitlements/svc/subscription"
)

// Invalidator is the write-path side of the cache: any collaborator that
// mutates subscription, plan, tenant or resource records calls the matching
// trigger immediately after a successful write, so the next read recomputes.
//
// Triggers are synchronous and best-effort. A reader that cached a record
// microseconds before the purge serves one stale read until its own TTL
// lapses; that consistency window is bounded by the subscription cache TTL
// and is accepted by design.
//
// Each trigger returns the number of cache entries removed; purging keys
// that do not exist is a silent no-op, so calling a trigger twice is
// harmless.
type Invalidator struct {
	cache  ttlcache.Store
	logger *slog.Logger
}

// NewInvalidator wraps the cache shared with the subscription resolver.
func NewInvalidator(cache ttlcache.Store, opts ...InvalidatorOption) *Invalidator {
	inv := &Invalidator{
		cache:  cache,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// InvalidatorOption configures an Invalidator.
type InvalidatorOption func(*Invalidator)

// WithInvalidatorLogger sets the logger for purge debugging.
func WithInvalidatorLogger(logger *slog.Logger) InvalidatorOption {
	return func(inv *Invalidator) { inv.logger = logger }
}

// SubscriptionChanged purges the tenant's cached subscription record and
// every grant derived from it.
func (inv *Invalidator) SubscriptionChanged(ctx context.Context, tenantID uuid.UUID) int {
	return inv.purge(ctx, "subscription changed", tenantID,
		subscription.CacheKey(tenantID),
		"limits:"+tenantID.String(),
		"features:"+tenantID.String(),
	)
}

// PlanChanged purges plan-derived keys for every tenant. A plan row is
// shared, so there is no way to enumerate affected tenants; the purge is
// deliberately coarse and the short record TTL picks up the rest.
func (inv *Invalidator) PlanChanged(ctx context.Context, planID string) int {
	removed := inv.cache.Invalidate(ctx, "plan:"+planID, "limits:", "features:")
	inv.logger.DebugContext(ctx, "cache purge",
		slog.String("trigger", "plan changed"),
		slog.String("plan_id", planID),
		slog.Int("removed", removed),
	)
	return removed
}

// UserChanged purges team and seat-count keys for the tenant.
func (inv *Invalidator) UserChanged(ctx context.Context, tenantID uuid.UUID) int {
	return inv.purge(ctx, "user changed", tenantID,
		"users:"+tenantID.String(),
		"team:"+tenantID.String(),
	)
}

// TenantChanged purges tenant profile and settings keys.
func (inv *Invalidator) TenantChanged(ctx context.Context, tenantID uuid.UUID) int {
	return inv.purge(ctx, "tenant changed", tenantID,
		"tenant:"+tenantID.String(),
		"settings:"+tenantID.String(),
	)
}

// IngredientChanged purges inventory-derived keys for the tenant.
func (inv *Invalidator) IngredientChanged(ctx context.Context, tenantID uuid.UUID) int {
	return inv.purge(ctx, "ingredient changed", tenantID,
		"ingredients:"+tenantID.String(),
		"inventory:"+tenantID.String(),
		"dashboard:"+tenantID.String(),
	)
}

// BatchChanged purges production-derived keys for the tenant.
func (inv *Invalidator) BatchChanged(ctx context.Context, tenantID uuid.UUID) int {
	return inv.purge(ctx, "batch changed", tenantID,
		"batches:"+tenantID.String(),
		"production:"+tenantID.String(),
		"dashboard:"+tenantID.String(),
	)
}

// MajorChange purges every cache entry whose key contains the tenant id.
// The escape hatch for imports, restores and plan migrations.
func (inv *Invalidator) MajorChange(ctx context.Context, tenantID uuid.UUID) int {
	return inv.purge(ctx, "major change", tenantID, tenantID.String())
}

func (inv *Invalidator) purge(ctx context.Context, trigger string, tenantID uuid.UUID, patterns ...string) int {
	removed := inv.cache.Invalidate(ctx, patterns...)
	inv.logger.DebugContext(ctx, "cache purge",
		slog.String("trigger", trigger),
		slog.String("tenant_id", tenantID.String()),
		slog.Int("removed", removed),
	)
	return removed
}
