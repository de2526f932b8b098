package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Status is the raw subscription state written by the billing collaborator.
type Status string

const (
	StatusActive          Status = "active"
	StatusTrialing        Status = "trialing"
	StatusPastDue         Status = "past_due"
	StatusPendingCheckout Status = "pending_checkout"
	StatusCancelled       Status = "cancelled"
)

// baseActive reports whether the status grants access on its own, before any
// time-window rules apply. PENDING_CHECKOUT counts so a tenant mid-checkout
// is not locked out while payment processing completes.
func (s Status) baseActive() bool {
	return s == StatusActive || s == StatusTrialing || s == StatusPendingCheckout
}

// Record is a tenant's stored subscription row. It is read-only from this
// package's perspective; only billing collaborators mutate it.
type Record struct {
	TenantID         uuid.UUID  `json:"tenant_id"`
	Status           Status     `json:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	PlanID           string     `json:"plan_id,omitempty"`
}

// Standing is the derived access decision for a tenant. It is recomputed on
// every resolution and never stored, so it always reflects a fresh clock.
type Standing struct {
	Active           bool
	Expired          bool
	InGracePeriod    bool
	CurrentPeriodEnd *time.Time
	Status           Status // empty when no record exists
	PlanID           string
}

// NoAccess is the fail-closed standing used for missing records and for any
// resolution error. Absence is a hard "no access" state, not a free tier.
func NoAccess() Standing {
	return Standing{Active: false, Expired: true}
}

// StandingAt derives the standing of a record at the given instant, with the
// given grace window after the period end. A nil record yields NoAccess.
func StandingAt(rec *Record, now time.Time, grace time.Duration) Standing {
	if rec == nil {
		return NoAccess()
	}

	st := Standing{
		CurrentPeriodEnd: rec.CurrentPeriodEnd,
		Status:           rec.Status,
		PlanID:           rec.PlanID,
	}

	if rec.CurrentPeriodEnd != nil {
		periodEnd := *rec.CurrentPeriodEnd
		graceEnd := periodEnd.Add(grace)
		st.InGracePeriod = now.After(periodEnd) && !now.After(graceEnd)
		// Expiry is declared only after the full grace window, not at period end.
		st.Expired = now.After(graceEnd)
	}

	// PAST_DUE grants access only while the grace window holds.
	pastDueInGrace := rec.Status == StatusPastDue && st.InGracePeriod

	st.Active = (rec.Status.baseActive() || pastDueInGrace) && !st.Expired
	return st
}
