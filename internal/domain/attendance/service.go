package attendance

import (
	"context"
)

// Service defines business logic for the attendance request workflow and the
// daily aggregate.
type Service interface {
	// SubmitRequest classifies the worker's position against the site zone
	// and persists a pending request with the classification attached.
	SubmitRequest(ctx context.Context, req SubmitRequest) (RequestResponse, error)

	// ListRequests retrieves requests with filters (reviewers).
	ListRequests(ctx context.Context, filter RequestFilter) (ListRequestsResponse, error)

	// Approve moves a pending request to approved and merges the worker into
	// the daily aggregate. Refused with ErrOutsideZone when the stored
	// classification is outside the zone.
	Approve(ctx context.Context, requestID string) (RequestResponse, error)

	// Reject moves a pending request to rejected. No aggregate side effect.
	Reject(ctx context.Context, requestID string) (RequestResponse, error)

	// MarkManual overwrites a date's aggregate with the submitted worker list.
	MarkManual(ctx context.Context, req ManualMarkRequest) (DailyAttendanceResponse, error)

	// GetDaily retrieves one date's aggregate.
	GetDaily(ctx context.Context, date string) (DailyAttendanceResponse, error)

	// ListDaily retrieves aggregates for an inclusive date range.
	ListDaily(ctx context.Context, filter DailyRangeFilter) ([]DailyAttendanceResponse, error)
}
