// Package entitlement decides what a tenant is allowed to do right now:
// which resource ceilings apply, which features are enabled, and whether one
// more resource may be created.
//
// Every decision starts from the subscription standing (svc/subscription)
// and fails closed: an inactive subscription, a fetch error or malformed
// plan data all collapse to zero limits and an empty feature set. Callers of
// HasFeature and CheckLimit receive plain values, never errors, so "unknown"
// can never be misread as "allowed".
//
// Feature data exists in two historical shapes that must both be supported
// indefinitely: modern plans carry a boolean map of feature keys, legacy
// plans carry free-text capability phrases. FeatureSet reconciles both
// behind one query surface, using a versioned synonym table for the map
// shape and a fuzzy phrase table for the legacy shape (see features.go).
//
// Typical wiring:
//
//	cache := ttlcache.New()
//	defer cache.Stop()
//
//	resolver := subscription.NewResolver(subscription.NewPGStore(pool), cache)
//	svc := entitlement.NewService(resolver, entitlement.NewPGCatalog(pool),
//	    entitlement.NewPGCounters(pool))
//
//	result := svc.CheckLimit(ctx, tenantID, entitlement.ResourceIngredients)
//	if !result.Allowed {
//	    return errors.New(result.Reason)
//	}
package entitlement
