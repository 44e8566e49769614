package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/buildhq/sitetrack-backend-go/internal/domain/attendance"
	"github.com/buildhq/sitetrack-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRequestRepository struct {
	db *database.DB
}

const requestColumns = `
	id, worker_id, worker_name, worker_email,
	request_date, request_time, latitude, longitude, within_zone,
	status, approved_by, approved_at, created_at, updated_at`

func scanRequest(row pgx.Row) (attendance.Request, error) {
	var req attendance.Request
	var status string
	err := row.Scan(
		&req.ID, &req.WorkerID, &req.WorkerName, &req.WorkerEmail,
		&req.RequestDate, &req.RequestTime, &req.Latitude, &req.Longitude, &req.WithinZone,
		&status, &req.ApprovedBy, &req.ApprovedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	req.Status = attendance.RequestStatus(status)
	return req, err
}

// Create implements attendance.RequestRepository.
func (r *attendanceRequestRepository) Create(ctx context.Context, newRequest attendance.Request) (attendance.Request, error) {
	q := GetQuerier(ctx, r.db)

	newRequest.ID = uuid.NewString()
	newRequest.Status = attendance.StatusPending

	query := `
		INSERT INTO attendance_requests (
			id, worker_id, worker_name, worker_email,
			request_date, request_time, latitude, longitude, within_zone, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newRequest.ID,
		newRequest.WorkerID,
		newRequest.WorkerName,
		newRequest.WorkerEmail,
		newRequest.RequestDate,
		newRequest.RequestTime,
		newRequest.Latitude,
		newRequest.Longitude,
		newRequest.WithinZone,
		string(newRequest.Status),
	).Scan(&newRequest.CreatedAt, &newRequest.UpdatedAt)

	if err != nil {
		return attendance.Request{}, fmt.Errorf("failed to create attendance request: %w", err)
	}

	return newRequest, nil
}

// GetByID implements attendance.RequestRepository.
func (r *attendanceRequestRepository) GetByID(ctx context.Context, id string) (attendance.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + requestColumns + ` FROM attendance_requests WHERE id = $1`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Request{}, attendance.ErrRequestNotFound
		}
		return attendance.Request{}, fmt.Errorf("failed to get attendance request by ID: %w", err)
	}

	return req, nil
}

// List implements attendance.RequestRepository.
func (r *attendanceRequestRepository) List(ctx context.Context, filter attendance.RequestFilter) ([]attendance.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND request_date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		baseWhere += fmt.Sprintf(" AND worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM attendance_requests WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance requests: %w", err)
	}

	// Most recent submission first within the filtered set
	selectQuery := fmt.Sprintf(`
		SELECT`+requestColumns+`
		FROM attendance_requests
		WHERE %s
		ORDER BY request_time DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance requests: %w", err)
	}
	defer rows.Close()

	var requests []attendance.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, nil
}

// SetStatus implements attendance.RequestRepository. The row is locked for the
// duration of the transaction so two reviewers cannot both move the same
// request to a terminal status.
func (r *attendanceRequestRepository) SetStatus(ctx context.Context, id string, status attendance.RequestStatus, reviewerID string, at time.Time) (attendance.Request, error) {
	var updated attendance.Request

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `SELECT` + requestColumns + ` FROM attendance_requests WHERE id = $1 FOR UPDATE`
		current, err := scanRequest(q.QueryRow(txCtx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrRequestNotFound
			}
			return fmt.Errorf("failed to lock attendance request: %w", err)
		}

		if current.Status.IsTerminal() {
			return attendance.ErrAlreadyReviewed
		}

		// Approval reads the classification stored at submission time.
		if status == attendance.StatusApproved && !current.WithinZone {
			return attendance.ErrOutsideZone
		}

		updateQuery := `
			UPDATE attendance_requests
			SET status = $2, approved_by = $3, approved_at = $4, updated_at = $4
			WHERE id = $1
		`
		if _, err := q.Exec(txCtx, updateQuery, id, string(status), reviewerID, at); err != nil {
			return fmt.Errorf("failed to update attendance request status: %w", err)
		}

		current.Status = status
		current.ApprovedBy = &reviewerID
		current.ApprovedAt = &at
		current.UpdatedAt = at
		updated = current
		return nil
	})
	if err != nil {
		return attendance.Request{}, err
	}

	return updated, nil
}

func NewAttendanceRequestRepository(db *database.DB) attendance.RequestRepository {
	return &attendanceRequestRepository{db: db}
}
