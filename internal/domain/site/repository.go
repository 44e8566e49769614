package site

import "context"

// Repository defines data access for the site zone record.
type Repository interface {
	// GetActive retrieves the single active site, ErrSiteNotFound when the
	// table is empty.
	GetActive(ctx context.Context) (Site, error)

	// Update mutates the active site zone.
	Update(ctx context.Context, s Site) (Site, error)

	// EnsureDefault inserts the seed site when no site exists yet. A no-op
	// otherwise.
	EnsureDefault(ctx context.Context, seed Site) error
}
