package attendance

import "errors"

// Attendance domain errors
var (
	// Request lifecycle errors
	ErrRequestNotFound = errors.New("attendance request not found")
	ErrAlreadyReviewed = errors.New("attendance request has already been approved or rejected")
	ErrOutsideZone     = errors.New("worker is outside the designated site zone")

	// Aggregate errors
	ErrDailyNotFound = errors.New("no attendance recorded for that date")

	// Persistence errors
	ErrStoreUnavailable = errors.New("attendance store unavailable")
)
