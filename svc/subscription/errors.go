package subscription

import "errors"

var (
	// ErrNotFound is returned by stores when a tenant has no subscription record.
	ErrNotFound = errors.New("subscription.errors.not_found")

	// ErrStoreUnavailable is returned when the underlying store cannot be queried.
	ErrStoreUnavailable = errors.New("subscription.errors.store_unavailable")
)
