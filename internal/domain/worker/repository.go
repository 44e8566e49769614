package worker

import "context"

// Repository defines data access for the worker registry.
type Repository interface {
	// Create persists a new worker, ErrEmailExists on a duplicate email.
	Create(ctx context.Context, w Worker) (Worker, error)

	// ListActive retrieves all active workers ordered by name.
	ListActive(ctx context.Context) ([]Worker, error)
}
