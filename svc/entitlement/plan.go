package entitlement

// Resource is a countable tenant resource kind gated by plan ceilings.
type Resource string

const (
	ResourceUsers            Resource = "users"
	ResourceIngredients      Resource = "ingredients"
	ResourceBatches          Resource = "batches"
	ResourceStorageLocations Resource = "storage_locations"
	ResourceRecipes          Resource = "recipes"
	ResourceProducts         Resource = "products"
)

// label returns the human form used in denial reasons.
func (r Resource) label() string {
	switch r {
	case ResourceUsers:
		return "User"
	case ResourceIngredients:
		return "Ingredient"
	case ResourceBatches:
		return "Batch"
	case ResourceStorageLocations:
		return "Storage location"
	case ResourceRecipes:
		return "Recipe"
	case ResourceProducts:
		return "Product"
	default:
		return string(r)
	}
}

// Limits holds the resource ceilings granted by a plan. A zero value grants
// nothing and is the fail-closed floor for inactive subscriptions.
type Limits struct {
	MaxUsers            int `json:"max_users" yaml:"max_users"`
	MaxIngredients      int `json:"max_ingredients" yaml:"max_ingredients"`
	MaxBatches          int `json:"max_batches" yaml:"max_batches"`
	MaxStorageLocations int `json:"max_storage_locations" yaml:"max_storage_locations"`
	MaxRecipes          int `json:"max_recipes" yaml:"max_recipes"`
	MaxProducts         int `json:"max_products" yaml:"max_products"`
}

// Limit returns the ceiling for a resource kind.
func (l Limits) Limit(res Resource) int {
	switch res {
	case ResourceUsers:
		return l.MaxUsers
	case ResourceIngredients:
		return l.MaxIngredients
	case ResourceBatches:
		return l.MaxBatches
	case ResourceStorageLocations:
		return l.MaxStorageLocations
	case ResourceRecipes:
		return l.MaxRecipes
	case ResourceProducts:
		return l.MaxProducts
	default:
		return 0
	}
}

// ZeroLimits is the fail-closed floor: an inactive subscription or a
// resolution error grants nothing.
func ZeroLimits() Limits {
	return Limits{}
}

// FreeTierLimits is the fixed minimal grant for tenants legitimately on the
// free tier (an active standing without any plan row). Distinct from the
// zero floor, which means "no access".
func FreeTierLimits() Limits {
	return Limits{
		MaxUsers:            1,
		MaxIngredients:      10,
		MaxBatches:          5,
		MaxStorageLocations: 2,
		MaxRecipes:          5,
		MaxProducts:         3,
	}
}

// withFallbacks fills any ceiling the plan left unset (zero or negative)
// with the free-tier minimum, so a sparsely configured plan row still grants
// a usable workspace (at least 1 user, and so on).
func (l Limits) withFallbacks() Limits {
	fallback := FreeTierLimits()
	return Limits{
		MaxUsers:            orDefault(l.MaxUsers, fallback.MaxUsers),
		MaxIngredients:      orDefault(l.MaxIngredients, fallback.MaxIngredients),
		MaxBatches:          orDefault(l.MaxBatches, fallback.MaxBatches),
		MaxStorageLocations: orDefault(l.MaxStorageLocations, fallback.MaxStorageLocations),
		MaxRecipes:          orDefault(l.MaxRecipes, fallback.MaxRecipes),
		MaxProducts:         orDefault(l.MaxProducts, fallback.MaxProducts),
	}
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

// Plan is one subscription tier. A plan row is shared read-only by every
// tenant subscribed to it.
type Plan struct {
	ID       string     `yaml:"-"`
	Name     string     `yaml:"name"`
	Limits   Limits     `yaml:"limits"`
	Features FeatureSet `yaml:"features"`
}

// Entitlements is the resolved grant for one tenant at one instant:
// ceilings plus the feature set to query. Recomputed per call, never stored.
type Entitlements struct {
	Limits   Limits
	Features FeatureSet
}

func noEntitlements() Entitlements {
	return Entitlements{Limits: ZeroLimits(), Features: EmptyFeatureSet()}
}

func freeTierEntitlements() Entitlements {
	return Entitlements{Limits: FreeTierLimits(), Features: EmptyFeatureSet()}
}
