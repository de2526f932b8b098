package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore reads subscription records from PostgreSQL. The table is owned and
// written by the billing side of the application; this store only selects.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) FetchSubscription(ctx context.Context, tenantID uuid.UUID) (*Record, error) {
	const query = `
		SELECT tenant_id, status, current_period_end, plan_id
		FROM subscriptions
		WHERE tenant_id = $1`

	var (
		rec       Record
		status    string
		periodEnd *time.Time
		planID    *string
	)
	err := s.db.QueryRow(ctx, query, tenantID).Scan(&rec.TenantID, &status, &periodEnd, &planID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	rec.Status = Status(status)
	rec.CurrentPeriodEnd = periodEnd
	if planID != nil {
		rec.PlanID = *planID
	}
	return &rec, nil
}
