package attendance

import (
	"strings"

	"github.com/buildhq/sitetrack-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE REQUEST DTOs
// ========================================

type SubmitRequest struct {
	WorkerID    string  `json:"worker_id"`
	WorkerName  string  `json:"worker_name"`
	WorkerEmail string  `json:"worker_email"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	// Submission date/time, YYYY-MM-DD and HH:MM:SS. Both default to the
	// server clock when omitted.
	RequestDate *string `json:"request_date,omitempty"`
	RequestTime *string `json:"request_time,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	if validator.IsEmpty(r.WorkerName) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_name",
			Message: "worker_name is required",
		})
	}

	if !validator.IsEmpty(r.WorkerEmail) && !validator.IsValidEmail(r.WorkerEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_email",
			Message: "worker_email must be a valid email address",
		})
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RequestDate != nil && *r.RequestDate != "" {
		if _, valid := validator.IsValidDate(*r.RequestDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "request_date",
				Message: "request_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestResponse struct {
	ID          string  `json:"id"`
	WorkerID    string  `json:"worker_id"`
	WorkerName  string  `json:"worker_name"`
	WorkerEmail string  `json:"worker_email"`
	RequestDate string  `json:"request_date"`
	RequestTime string  `json:"request_time"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	WithinZone  bool    `json:"within_zone"`
	Status      string  `json:"status"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type RequestFilter struct {
	// Search & Filter
	Date     *string `json:"date,omitempty"` // YYYY-MM-DD
	Status   *string `json:"status,omitempty"`
	WorkerID *string `json:"worker_id,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		validStatuses := []string{"pending", "approved", "rejected"}
		if !validator.IsInSlice(strings.ToLower(*f.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected",
			})
		}
	}

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListRequestsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Showing    string            `json:"showing"`
	Requests   []RequestResponse `json:"requests"`
}

// ========================================
// DAILY ATTENDANCE DTOs
// ========================================

// ManualMarkRequest records a full day's attendance without per-worker
// requests, for days the crew has no connectivity on site. The submitted list
// replaces whatever the aggregate held for that date.
type ManualMarkRequest struct {
	Date             *string  `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	PresentWorkerIDs []string `json:"present_worker_ids"`
}

func (r *ManualMarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PresentWorkerIDs == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "present_worker_ids",
			Message: "present_worker_ids is required",
		})
	}

	for _, id := range r.PresentWorkerIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "present_worker_ids",
				Message: "present_worker_ids must not contain empty ids",
			})
			break
		}
	}

	if r.Date != nil && *r.Date != "" {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailyAttendanceResponse struct {
	Date             string   `json:"date"`
	PresentWorkerIDs []string `json:"present_worker_ids"`
	TotalPresent     int      `json:"total_present"`
	MarkedBy         string   `json:"marked_by"`
	MarkedAt         string   `json:"marked_at"`
}

type DailyRangeFilter struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (f *DailyRangeFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startValid := validator.IsValidDate(f.StartDate)
	if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endValid := validator.IsValidDate(f.EndDate)
	if !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startValid && endValid && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
