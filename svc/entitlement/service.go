package entitlement

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/batchline/entitlements/svc/subscription"
)

// StatusResolver is the subscription standing collaborator.
// *subscription.Resolver satisfies it.
type StatusResolver interface {
	Resolve(ctx context.Context, tenantID uuid.UUID) subscription.Standing
}

// Service resolves entitlements and gates usage for tenants.
type Service struct {
	status   StatusResolver
	catalog  PlanCatalog
	counters CounterRegistry
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used when errors are collapsed into denials.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

// NewService wires the entitlement resolver over its collaborators.
// A nil counters registry is replaced with an empty one, in which case every
// CheckLimit denies (no counter means usage cannot be verified).
func NewService(status StatusResolver, catalog PlanCatalog, counters CounterRegistry, opts ...ServiceOption) *Service {
	s := &Service{
		status:   status,
		catalog:  catalog,
		counters: counters,
		logger:   slog.Default(),
	}
	if s.counters == nil {
		s.counters = NewRegistry()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetLimits resolves the tenant's current grant. It never returns an error:
// any failure collapses to the zero floor, identical to an inactive
// subscription, so security-sensitive callers cannot distinguish "error"
// from "no access".
func (s *Service) GetLimits(ctx context.Context, tenantID uuid.UUID) Entitlements {
	ent, err := s.resolve(ctx, tenantID)
	if err != nil {
		s.logger.WarnContext(ctx, "entitlement resolution failed, granting nothing",
			slog.String("tenant_id", tenantID.String()),
			slog.Any("error", err),
		)
		return noEntitlements()
	}
	return ent
}

func (s *Service) resolve(ctx context.Context, tenantID uuid.UUID) (Entitlements, error) {
	standing := s.status.Resolve(ctx, tenantID)

	// Inactive grants nothing regardless of plan. This is the fail-closed
	// floor, and it is deliberately identical to the error path above.
	if !standing.Active {
		return noEntitlements(), nil
	}

	// Active but without a plan row anywhere: the legitimate free tier.
	if standing.PlanID == "" {
		return freeTierEntitlements(), nil
	}

	plan, err := s.catalog.FetchPlan(ctx, standing.PlanID)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return freeTierEntitlements(), nil
		}
		return noEntitlements(), err
	}

	return Entitlements{
		Limits:   plan.Limits.withFallbacks(),
		Features: plan.Features,
	}, nil
}

// HasFeature reports whether the tenant currently has access to the feature
// identified by the canonical key. All failure modes read as false.
func (s *Service) HasFeature(ctx context.Context, tenantID uuid.UUID, key string) bool {
	return s.GetLimits(ctx, tenantID).Features.Has(key)
}
