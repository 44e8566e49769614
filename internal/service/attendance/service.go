package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/buildhq/sitetrack-backend-go/internal/domain/attendance"
	"github.com/buildhq/sitetrack-backend-go/internal/domain/auth"
	"github.com/buildhq/sitetrack-backend-go/internal/domain/site"
	"github.com/buildhq/sitetrack-backend-go/internal/domain/user"
	"github.com/buildhq/sitetrack-backend-go/internal/pkg/geo"
)

type AttendanceServiceImpl struct {
	attendance.RequestRepository
	attendance.DailyRepository
	siteRepository site.Repository
	storeTimeout   time.Duration
	logger         *slog.Logger
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// storeCtx bounds a persistence call so a store outage surfaces as a timeout
// instead of a hung request.
func (a *AttendanceServiceImpl) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.storeTimeout)
}

func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", attendance.ErrStoreUnavailable, err)
	}
	return err
}

// SubmitRequest implements attendance.Service.
func (a *AttendanceServiceImpl) SubmitRequest(ctx context.Context, req attendance.SubmitRequest) (attendance.RequestResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return attendance.RequestResponse{}, err
	}

	// Workers always submit as themselves; identity is captured from the
	// auth context, not trusted from the body.
	if actor.Role == user.RoleWorker || req.WorkerID == "" {
		req.WorkerID = actor.ID
		req.WorkerName = actor.Name
		req.WorkerEmail = actor.Email
	}

	if err := req.Validate(); err != nil {
		return attendance.RequestResponse{}, err
	}

	nowUTC := time.Now().UTC()

	requestDate := nowUTC.Truncate(24 * time.Hour)
	if req.RequestDate != nil && *req.RequestDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.RequestDate)
		if err != nil {
			return attendance.RequestResponse{}, fmt.Errorf("invalid request_date: %w", err)
		}
		requestDate = parsed
	}

	requestTime := nowUTC
	if req.RequestTime != nil && *req.RequestTime != "" {
		parsed, err := time.Parse("15:04:05", *req.RequestTime)
		if err != nil {
			return attendance.RequestResponse{}, fmt.Errorf("invalid request_time: %w", err)
		}
		requestTime = time.Date(
			requestDate.Year(), requestDate.Month(), requestDate.Day(),
			parsed.Hour(), parsed.Minute(), parsed.Second(), 0, time.UTC,
		)
	}

	storeCtx, cancel := a.storeCtx(ctx)
	defer cancel()

	zone, err := a.siteRepository.GetActive(storeCtx)
	if err != nil {
		return attendance.RequestResponse{}, storeErr(fmt.Errorf("failed to get site zone: %w", err))
	}

	// Classified once at submission time; the stored value is what approval
	// decisions read later.
	withinZone, err := geo.WithinZone(
		geo.Point{Latitude: req.Latitude, Longitude: req.Longitude},
		geo.Point{Latitude: zone.Latitude, Longitude: zone.Longitude},
		zone.RadiusMeters,
	)
	if err != nil {
		return attendance.RequestResponse{}, err
	}

	data := attendance.Request{
		WorkerID:    req.WorkerID,
		WorkerName:  req.WorkerName,
		WorkerEmail: req.WorkerEmail,
		RequestDate: requestDate,
		RequestTime: requestTime,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		WithinZone:  withinZone,
	}

	created, err := a.RequestRepository.Create(storeCtx, data)
	if err != nil {
		return attendance.RequestResponse{}, storeErr(fmt.Errorf("failed to create attendance request: %w", err))
	}

	return mapRequestToResponse(created), nil
}

// ListRequests implements attendance.Service.
func (a *AttendanceServiceImpl) ListRequests(ctx context.Context, filter attendance.RequestFilter) (attendance.ListRequestsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRequestsResponse{}, err
	}

	storeCtx, cancel := a.storeCtx(ctx)
	defer cancel()

	requests, total, err := a.RequestRepository.List(storeCtx, filter)
	if err != nil {
		return attendance.ListRequestsResponse{}, storeErr(fmt.Errorf("failed to list attendance requests: %w", err))
	}

	responses := make([]attendance.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, mapRequestToResponse(req))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListRequestsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Requests:   responses,
	}, nil
}

// Approve implements attendance.Service. Approval is categorically refused for
// requests classified outside the zone at submission time; the classification
// is never recomputed here.
func (a *AttendanceServiceImpl) Approve(ctx context.Context, requestID string) (attendance.RequestResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return attendance.RequestResponse{}, err
	}

	storeCtx, cancel := a.storeCtx(ctx)
	defer cancel()

	req, err := a.RequestRepository.GetByID(storeCtx, requestID)
	if err != nil {
		if errors.Is(err, attendance.ErrRequestNotFound) {
			return attendance.RequestResponse{}, attendance.ErrRequestNotFound
		}
		return attendance.RequestResponse{}, storeErr(fmt.Errorf("failed to get attendance request: %w", err))
	}

	if !req.WithinZone {
		return attendance.RequestResponse{}, attendance.ErrOutsideZone
	}

	now := time.Now().UTC()
	updated, err := a.RequestRepository.SetStatus(storeCtx, requestID, attendance.StatusApproved, actor.ID, now)
	if err != nil {
		if errors.Is(err, attendance.ErrRequestNotFound) ||
			errors.Is(err, attendance.ErrAlreadyReviewed) ||
			errors.Is(err, attendance.ErrOutsideZone) {
			return attendance.RequestResponse{}, err
		}
		return attendance.RequestResponse{}, storeErr(fmt.Errorf("failed to approve attendance request: %w", err))
	}

	// The status update has committed at this point. A merge failure leaves
	// the aggregate behind the request store until someone reconciles it, so
	// it is reported loudly rather than rolling back the approval.
	mergeCtx, cancelMerge := a.storeCtx(ctx)
	defer cancelMerge()

	if _, err := a.DailyRepository.Merge(mergeCtx, updated.RequestDate, updated.WorkerID, actor.ID, now); err != nil {
		a.logger.Error("daily attendance merge failed after approval; manual reconciliation required",
			"request_id", updated.ID,
			"worker_id", updated.WorkerID,
			"date", updated.RequestDate.Format("2006-01-02"),
			"error", err,
		)
	}

	return mapRequestToResponse(updated), nil
}

// Reject implements attendance.Service. No aggregate side effect.
func (a *AttendanceServiceImpl) Reject(ctx context.Context, requestID string) (attendance.RequestResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return attendance.RequestResponse{}, err
	}

	storeCtx, cancel := a.storeCtx(ctx)
	defer cancel()

	updated, err := a.RequestRepository.SetStatus(storeCtx, requestID, attendance.StatusRejected, actor.ID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, attendance.ErrRequestNotFound) || errors.Is(err, attendance.ErrAlreadyReviewed) {
			return attendance.RequestResponse{}, err
		}
		return attendance.RequestResponse{}, storeErr(fmt.Errorf("failed to reject attendance request: %w", err))
	}

	return mapRequestToResponse(updated), nil
}

// MarkManual implements attendance.Service. The manual path replaces the whole
// present-set for the date and does not reconcile with pending or approved
// requests for the same day.
func (a *AttendanceServiceImpl) MarkManual(ctx context.Context, req attendance.ManualMarkRequest) (attendance.DailyAttendanceResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return attendance.DailyAttendanceResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.DailyAttendanceResponse{}, err
	}

	nowUTC := time.Now().UTC()
	date := nowUTC.Truncate(24 * time.Hour)
	if req.Date != nil && *req.Date != "" {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return attendance.DailyAttendanceResponse{}, fmt.Errorf("invalid date: %w", err)
		}
		date = parsed
	}

	workerIDs := dedupe(req.PresentWorkerIDs)

	storeCtx, cancel := a.storeCtx(ctx)
	defer cancel()

	daily, err := a.DailyRepository.Overwrite(storeCtx, date, workerIDs, actor.ID, nowUTC)
	if err != nil {
		return attendance.DailyAttendanceResponse{}, storeErr(fmt.Errorf("failed to overwrite daily attendance: %w", err))
	}

	return mapDailyToResponse(daily), nil
}

// GetDaily implements attendance.Service.
func (a *AttendanceServiceImpl) GetDaily(ctx context.Context, date string) (attendance.DailyAttendanceResponse, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return attendance.DailyAttendanceResponse{}, fmt.Errorf("invalid date: %w", err)
	}

	storeCtx, cancel := a.storeCtx(ctx)
	defer cancel()

	daily, err := a.DailyRepository.GetByDate(storeCtx, parsed)
	if err != nil {
		if errors.Is(err, attendance.ErrDailyNotFound) {
			return attendance.DailyAttendanceResponse{}, attendance.ErrDailyNotFound
		}
		return attendance.DailyAttendanceResponse{}, storeErr(fmt.Errorf("failed to get daily attendance: %w", err))
	}

	return mapDailyToResponse(daily), nil
}

// ListDaily implements attendance.Service.
func (a *AttendanceServiceImpl) ListDaily(ctx context.Context, filter attendance.DailyRangeFilter) ([]attendance.DailyAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.Parse("2006-01-02", filter.StartDate)
	end, _ := time.Parse("2006-01-02", filter.EndDate)

	storeCtx, cancel := a.storeCtx(ctx)
	defer cancel()

	records, err := a.DailyRepository.ListRange(storeCtx, start, end)
	if err != nil {
		return nil, storeErr(fmt.Errorf("failed to list daily attendance: %w", err))
	}

	responses := make([]attendance.DailyAttendanceResponse, 0, len(records))
	for _, daily := range records {
		responses = append(responses, mapDailyToResponse(daily))
	}

	return responses, nil
}

// dedupe removes duplicate ids preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// mapRequestToResponse converts a Request entity to RequestResponse
func mapRequestToResponse(req attendance.Request) attendance.RequestResponse {
	return attendance.RequestResponse{
		ID:          req.ID,
		WorkerID:    req.WorkerID,
		WorkerName:  req.WorkerName,
		WorkerEmail: req.WorkerEmail,
		RequestDate: req.RequestDate.Format("2006-01-02"),
		RequestTime: req.RequestTime.Format("15:04:05"),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		WithinZone:  req.WithinZone,
		Status:      string(req.Status),
		ApprovedBy:  req.ApprovedBy,
		ApprovedAt:  timePtrToString(req.ApprovedAt),
		CreatedAt:   req.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// mapDailyToResponse converts a DailyAttendance entity to its response shape
func mapDailyToResponse(daily attendance.DailyAttendance) attendance.DailyAttendanceResponse {
	ids := daily.PresentWorkerIDs
	if ids == nil {
		ids = []string{}
	}
	return attendance.DailyAttendanceResponse{
		Date:             daily.Date.Format("2006-01-02"),
		PresentWorkerIDs: ids,
		TotalPresent:     daily.TotalPresent,
		MarkedBy:         daily.MarkedBy,
		MarkedAt:         daily.MarkedAt.Format("2006-01-02 15:04:05"),
	}
}

func NewAttendanceService(
	requestRepo attendance.RequestRepository,
	dailyRepo attendance.DailyRepository,
	siteRepo site.Repository,
	storeTimeout time.Duration,
	logger *slog.Logger,
) attendance.Service {
	return &AttendanceServiceImpl{
		RequestRepository: requestRepo,
		DailyRepository:   dailyRepo,
		siteRepository:    siteRepo,
		storeTimeout:      storeTimeout,
		logger:            logger,
	}
}
