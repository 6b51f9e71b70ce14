package services

import "errors"

var (
	// ErrNotFound covers both absent and inactive entities. The two are
	// deliberately indistinguishable so callers cannot probe for the
	// existence of deactivated tenants or tables.
	ErrNotFound = errors.New("not found")

	// ErrTenantMismatch means the entity exists but belongs to a different
	// restaurant. Handlers surface it as a plain not-found; the sentinel
	// stays distinct so tests and internal guards can tell them apart.
	ErrTenantMismatch = errors.New("entity belongs to a different restaurant")

	// ErrConflict is a uniqueness violation on a slug, code, table number
	// or QR token that survived the bounded retry budget.
	ErrConflict = errors.New("identifier already in use")

	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnavailableItem   = errors.New("menu item unavailable")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidIdentifier = errors.New("identifier must be at least 3 url-safe characters")
)
