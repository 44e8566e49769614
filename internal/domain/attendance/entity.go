package attendance

import (
	"time"
)

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// IsTerminal reports whether the status permits no further transition.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Request is a single geofenced attendance request. WithinZone is classified
// once at submission time and never recomputed afterwards; approval decisions
// read the stored value.
type Request struct {
	ID          string
	WorkerID    string
	WorkerName  string
	WorkerEmail string
	RequestDate time.Time
	RequestTime time.Time
	Latitude    float64
	Longitude   float64
	WithinZone  bool
	Status      RequestStatus
	ApprovedBy  *string
	ApprovedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DailyAttendance is the per-date aggregate of present workers. TotalPresent
// is always derived from PresentWorkerIDs, never stored independently.
type DailyAttendance struct {
	Date             time.Time
	PresentWorkerIDs []string
	TotalPresent     int
	MarkedBy         string
	MarkedAt         time.Time
}
