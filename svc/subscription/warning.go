package subscription

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Warning is a billing notice for the UI collaborator. Enforcement never
// depends on it; access cuts off through Resolve regardless of whether the
// tenant was warned.
type Warning struct {
	Message       string `json:"message"`
	DaysRemaining int    `json:"days_remaining"`
	InGracePeriod bool   `json:"in_grace_period"`
}

// CheckWarning reports whether the tenant should see a billing warning.
// Returns nil when no warning applies.
//
// This is a one-off notification check, not a hot-path gate, so it reads the
// store directly instead of going through the cache: a user opening their
// billing page should see the truth, not a 30-second-old record.
func (r *Resolver) CheckWarning(ctx context.Context, tenantID uuid.UUID) (*Warning, error) {
	rec, err := r.store.FetchSubscription(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if rec.CurrentPeriodEnd == nil {
		return nil, nil
	}

	now := r.now()
	standing := StandingAt(rec, now, r.grace)

	switch {
	case standing.InGracePeriod:
		return &Warning{
			Message:       "Your billing period has ended. Renew now to keep access to your workspace.",
			DaysRemaining: 0,
			InGracePeriod: true,
		}, nil

	case standing.Expired:
		// Past grace, enforcement has taken over; repeating the warning
		// adds nothing.
		return nil, nil
	}

	if rec.Status != StatusActive && rec.Status != StatusTrialing {
		return nil, nil
	}

	days := daysUntil(now, *rec.CurrentPeriodEnd)
	if days > 0 && days <= r.warningDays {
		return &Warning{
			Message:       fmt.Sprintf("Your subscription period ends in %s. Make sure your billing details are up to date.", pluralDays(days)),
			DaysRemaining: days,
		}, nil
	}

	return nil, nil
}

// daysUntil counts whole days from now to t, rounding partial days up so a
// period ending in 36 hours still reads as "2 days".
func daysUntil(now, t time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
