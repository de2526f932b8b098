package entitlement

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGCatalog reads plan rows from PostgreSQL. The features column is jsonb
// and carries either of the two historical shapes; DecodeFeatureSet
// reconciles them and turns malformed rows into an empty (denying) set.
type PGCatalog struct {
	db *pgxpool.Pool
}

func NewPGCatalog(db *pgxpool.Pool) *PGCatalog {
	return &PGCatalog{db: db}
}

func (c *PGCatalog) FetchPlan(ctx context.Context, planID string) (*Plan, error) {
	const query = `
		SELECT id, name,
		       max_users, max_ingredients, max_batches,
		       max_storage_locations, max_recipes, max_products,
		       features
		FROM plans
		WHERE id = $1`

	var (
		plan     Plan
		ceilings [6]*int
		features []byte
	)
	err := c.db.QueryRow(ctx, query, planID).Scan(
		&plan.ID, &plan.Name,
		&ceilings[0], &ceilings[1], &ceilings[2],
		&ceilings[3], &ceilings[4], &ceilings[5],
		&features,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, errors.Join(ErrCatalogUnavailable, err)
	}

	// NULL ceilings stay zero here; the resolver applies the per-field
	// fallbacks when the grant is assembled.
	plan.Limits = Limits{
		MaxUsers:            deref(ceilings[0]),
		MaxIngredients:      deref(ceilings[1]),
		MaxBatches:          deref(ceilings[2]),
		MaxStorageLocations: deref(ceilings[3]),
		MaxRecipes:          deref(ceilings[4]),
		MaxProducts:         deref(ceilings[5]),
	}
	plan.Features = DecodeFeatureSet(features)
	return &plan, nil
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
