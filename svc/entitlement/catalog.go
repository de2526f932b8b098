package entitlement

import (
	"context"
	"sync"
)

// PlanCatalog is the external plan lookup collaborator. Implementations
// must return ErrPlanNotFound when the plan id has no row.
type PlanCatalog interface {
	FetchPlan(ctx context.Context, planID string) (*Plan, error)
}

// MemCatalog is an in-memory PlanCatalog for tests and static setups.
type MemCatalog struct {
	mu    sync.RWMutex
	plans map[string]Plan
}

// NewMemCatalog returns a catalog seeded with deep copies of the given plans.
func NewMemCatalog(plans ...Plan) *MemCatalog {
	c := &MemCatalog{plans: make(map[string]Plan, len(plans))}
	for _, plan := range plans {
		c.plans[plan.ID] = clonePlan(plan)
	}
	return c
}

func (c *MemCatalog) FetchPlan(ctx context.Context, planID string) (*Plan, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	plan, ok := c.plans[planID]
	if !ok {
		return nil, ErrPlanNotFound
	}
	out := clonePlan(plan)
	return &out, nil
}

// Put inserts or replaces a plan.
func (c *MemCatalog) Put(plan Plan) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plans[plan.ID] = clonePlan(plan)
}

// clonePlan copies the plan so one shared row cannot be mutated through a
// fetched value.
func clonePlan(plan Plan) Plan {
	plan.Features = plan.Features.clone()
	return plan
}
