package entitlement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// countedTables maps each resource kind to the table its live rows are
// counted in. Soft-deleted rows never count against a ceiling.
var countedTables = map[Resource]string{
	ResourceUsers:            "users",
	ResourceIngredients:      "ingredients",
	ResourceBatches:          "batches",
	ResourceStorageLocations: "storage_locations",
	ResourceRecipes:          "recipes",
	ResourceProducts:         "products",
}

// NewPGCounters builds a CounterRegistry backed by COUNT queries for the
// standard resource tables.
func NewPGCounters(db *pgxpool.Pool) CounterRegistry {
	registry := NewRegistry()
	for res, table := range countedTables {
		registry.Register(res, pgCounter(db, table))
	}
	return registry
}

func pgCounter(db *pgxpool.Pool, table string) CounterFunc {
	// The table name comes from the fixed map above, never from input.
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE tenant_id = $1 AND deleted_at IS NULL", table)

	return func(ctx context.Context, tenantID uuid.UUID) (int, error) {
		var count int
		if err := db.QueryRow(ctx, query, tenantID).Scan(&count); err != nil {
			return 0, err
		}
		return count, nil
	}
}
