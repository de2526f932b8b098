package entitlement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// CounterFunc returns the current number of live resources of one kind for
// a tenant. Should be fast: count at the repository level, not by listing.
type CounterFunc func(ctx context.Context, tenantID uuid.UUID) (int, error)

// CounterRegistry maps a Resource to its CounterFunc.
// Not thread-safe: register all counters at startup only.
type CounterRegistry map[Resource]CounterFunc

// NewRegistry returns a new, empty CounterRegistry.
func NewRegistry() CounterRegistry {
	return make(CounterRegistry)
}

// Register sets or replaces the CounterFunc for a resource. Panics if fn is
// nil, since a nil counter is always a wiring bug.
func (r CounterRegistry) Register(res Resource, fn CounterFunc) {
	if fn == nil {
		panic(fmt.Sprintf("entitlement: CounterFunc for resource %q cannot be nil", res))
	}
	r[res] = fn
}

// Result is the outcome of a limit check. A pure value, recomputed per call.
type Result struct {
	Allowed      bool   `json:"allowed"`
	Reason       string `json:"reason,omitempty"`
	CurrentUsage int    `json:"current_usage"`
	Limit        int    `json:"limit"`
}

// CheckLimit decides whether the tenant may create one more resource of the
// given kind. The comparison is strict less-than: a ceiling of N permits
// exactly N existing resources and blocks the N+1th creation, so callers
// must run the check before creating, not after.
//
// Like the rest of the entitlement surface it never returns an error; a
// counter failure denies with a generic reason.
func (s *Service) CheckLimit(ctx context.Context, tenantID uuid.UUID, res Resource) Result {
	ent := s.GetLimits(ctx, tenantID)
	limit := ent.Limits.Limit(res)

	counter, ok := s.counters[res]
	if !ok {
		s.logger.ErrorContext(ctx, "no usage counter registered, denying",
			slog.String("tenant_id", tenantID.String()),
			slog.String("resource", string(res)),
		)
		return Result{
			Allowed: false,
			Reason:  fmt.Sprintf("%s usage cannot be verified right now", res.label()),
			Limit:   limit,
		}
	}

	usage, err := counter(ctx, tenantID)
	if err != nil {
		s.logger.WarnContext(ctx, "usage counter failed, denying",
			slog.String("tenant_id", tenantID.String()),
			slog.String("resource", string(res)),
			slog.Any("error", err),
		)
		return Result{
			Allowed: false,
			Reason:  fmt.Sprintf("%s usage cannot be verified right now", res.label()),
			Limit:   limit,
		}
	}

	if usage < limit {
		return Result{Allowed: true, CurrentUsage: usage, Limit: limit}
	}

	return Result{
		Allowed:      false,
		Reason:       fmt.Sprintf("%s limit of %d reached", res.label(), limit),
		CurrentUsage: usage,
		Limit:        limit,
	}
}
