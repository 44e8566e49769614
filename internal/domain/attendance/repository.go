package attendance

import (
	"context"
	"time"
)

// RequestRepository defines data access for attendance requests.
type RequestRepository interface {
	// Create persists a new pending request and assigns its id.
	Create(ctx context.Context, request Request) (Request, error)

	// GetByID retrieves a request by id, ErrRequestNotFound when absent.
	GetByID(ctx context.Context, id string) (Request, error)

	// List retrieves requests matching the filter, newest submission first.
	List(ctx context.Context, filter RequestFilter) ([]Request, int64, error)

	// SetStatus moves a pending request to a terminal status and records the
	// reviewer. Fails with ErrRequestNotFound for unknown ids,
	// ErrAlreadyReviewed when the request is already terminal, and
	// ErrOutsideZone when approving a request stored as outside the zone.
	SetStatus(ctx context.Context, id string, status RequestStatus, reviewerID string, at time.Time) (Request, error)
}

// DailyRepository defines data access for the per-date attendance aggregate.
type DailyRepository interface {
	// Merge adds one worker to the date's present-set. The union and the
	// derived count are computed in a single atomic upsert so concurrent
	// merges for the same date cannot lose updates. Adding a worker already
	// in the set is a no-op that still refreshes marked_by/marked_at.
	Merge(ctx context.Context, date time.Time, workerID string, actorID string, at time.Time) (DailyAttendance, error)

	// Overwrite replaces the date's present-set wholesale. Last writer wins.
	// workerIDs must be deduplicated by the caller.
	Overwrite(ctx context.Context, date time.Time, workerIDs []string, actorID string, at time.Time) (DailyAttendance, error)

	// GetByDate retrieves the aggregate, ErrDailyNotFound when absent.
	GetByDate(ctx context.Context, date time.Time) (DailyAttendance, error)

	// ListRange retrieves aggregates for the inclusive date range, newest first.
	ListRange(ctx context.Context, start, end time.Time) ([]DailyAttendance, error)
}
