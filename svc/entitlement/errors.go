package entitlement

import "errors"

var (
	// ErrPlanNotFound is returned by catalogs when a plan id has no row.
	ErrPlanNotFound = errors.New("entitlement.errors.plan_not_found")

	// ErrCatalogUnavailable is returned when the plan catalog cannot be queried.
	ErrCatalogUnavailable = errors.New("entitlement.errors.catalog_unavailable")

	// ErrInvalidCatalogFile is returned when a YAML plan file cannot be parsed.
	ErrInvalidCatalogFile = errors.New("entitlement.errors.invalid_catalog_file")
)
