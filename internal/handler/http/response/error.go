package response

import (
	"errors"
	"net/http"

	"github.com/buildhq/sitetrack-backend-go/internal/domain/attendance"
	"github.com/buildhq/sitetrack-backend-go/internal/domain/auth"
	"github.com/buildhq/sitetrack-backend-go/internal/domain/site"
	"github.com/buildhq/sitetrack-backend-go/internal/domain/user"
	"github.com/buildhq/sitetrack-backend-go/internal/domain/worker"
	"github.com/buildhq/sitetrack-backend-go/internal/pkg/geo"
	"github.com/buildhq/sitetrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrMissingActor):
		Unauthorized(w, "Authenticated user context missing")
	case errors.Is(err, auth.ErrInvalidRole):
		Forbidden(w, "Role not recognized")
	case errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrReviewerAccessRequired):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRequestNotFound):
		NotFound(w, "Attendance request not found")
	case errors.Is(err, attendance.ErrAlreadyReviewed):
		Conflict(w, "Attendance request has already been reviewed")
	case errors.Is(err, attendance.ErrOutsideZone):
		ZoneViolation(w, "Cannot approve: worker was outside the designated site zone at submission")
	case errors.Is(err, attendance.ErrDailyNotFound):
		NotFound(w, "No attendance recorded for this date")
	case errors.Is(err, attendance.ErrStoreUnavailable):
		ServiceUnavailable(w, "Attendance store is unavailable, try again later")

	// Coordinates outside valid ranges
	case errors.Is(err, geo.ErrInvalidCoordinate):
		ValidationError(w, map[string]string{"location": err.Error()})

	// Site domain errors
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Site zone not configured")

	// Worker domain errors
	case errors.Is(err, worker.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
