package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/buildhq/sitetrack-backend-go/internal/domain/attendance"
	"github.com/buildhq/sitetrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dailyAttendanceRepository struct {
	db *database.DB
}

// Merge implements attendance.DailyRepository. The whole set-union happens in
// one upsert statement: the row is created on first merge for a date, and on
// conflict the union and the derived count are computed under the row lock the
// upsert already holds. Two concurrent merges for the same date serialize on
// that lock instead of racing a read-then-write.
func (r *dailyAttendanceRepository) Merge(ctx context.Context, date time.Time, workerID string, actorID string, at time.Time) (attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_attendance (date, present_worker_ids, total_present, marked_by, marked_at)
		VALUES ($1, ARRAY[$2]::text[], 1, $3, $4)
		ON CONFLICT (date) DO UPDATE SET
			present_worker_ids = CASE
				WHEN daily_attendance.present_worker_ids @> EXCLUDED.present_worker_ids
				THEN daily_attendance.present_worker_ids
				ELSE daily_attendance.present_worker_ids || EXCLUDED.present_worker_ids
			END,
			total_present = CASE
				WHEN daily_attendance.present_worker_ids @> EXCLUDED.present_worker_ids
				THEN daily_attendance.total_present
				ELSE daily_attendance.total_present + 1
			END,
			marked_by = EXCLUDED.marked_by,
			marked_at = EXCLUDED.marked_at
		RETURNING date, present_worker_ids, total_present, marked_by, marked_at
	`

	var daily attendance.DailyAttendance
	err := q.QueryRow(ctx, query, date, workerID, actorID, at).Scan(
		&daily.Date, &daily.PresentWorkerIDs, &daily.TotalPresent, &daily.MarkedBy, &daily.MarkedAt,
	)
	if err != nil {
		return attendance.DailyAttendance{}, fmt.Errorf("failed to merge daily attendance: %w", err)
	}

	return daily, nil
}

// Overwrite implements attendance.DailyRepository. Last writer wins.
func (r *dailyAttendanceRepository) Overwrite(ctx context.Context, date time.Time, workerIDs []string, actorID string, at time.Time) (attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_attendance (date, present_worker_ids, total_present, marked_by, marked_at)
		VALUES ($1, $2::text[], cardinality($2::text[]), $3, $4)
		ON CONFLICT (date) DO UPDATE SET
			present_worker_ids = EXCLUDED.present_worker_ids,
			total_present = EXCLUDED.total_present,
			marked_by = EXCLUDED.marked_by,
			marked_at = EXCLUDED.marked_at
		RETURNING date, present_worker_ids, total_present, marked_by, marked_at
	`

	var daily attendance.DailyAttendance
	err := q.QueryRow(ctx, query, date, workerIDs, actorID, at).Scan(
		&daily.Date, &daily.PresentWorkerIDs, &daily.TotalPresent, &daily.MarkedBy, &daily.MarkedAt,
	)
	if err != nil {
		return attendance.DailyAttendance{}, fmt.Errorf("failed to overwrite daily attendance: %w", err)
	}

	return daily, nil
}

// GetByDate implements attendance.DailyRepository.
func (r *dailyAttendanceRepository) GetByDate(ctx context.Context, date time.Time) (attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date, present_worker_ids, total_present, marked_by, marked_at
		FROM daily_attendance
		WHERE date = $1
	`

	var daily attendance.DailyAttendance
	err := q.QueryRow(ctx, query, date).Scan(
		&daily.Date, &daily.PresentWorkerIDs, &daily.TotalPresent, &daily.MarkedBy, &daily.MarkedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DailyAttendance{}, attendance.ErrDailyNotFound
		}
		return attendance.DailyAttendance{}, fmt.Errorf("failed to get daily attendance: %w", err)
	}

	return daily, nil
}

// ListRange implements attendance.DailyRepository.
func (r *dailyAttendanceRepository) ListRange(ctx context.Context, start, end time.Time) ([]attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date, present_worker_ids, total_present, marked_by, marked_at
		FROM daily_attendance
		WHERE date >= $1 AND date <= $2
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily attendance range: %w", err)
	}
	defer rows.Close()

	var records []attendance.DailyAttendance
	for rows.Next() {
		var daily attendance.DailyAttendance
		err := rows.Scan(
			&daily.Date, &daily.PresentWorkerIDs, &daily.TotalPresent, &daily.MarkedBy, &daily.MarkedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily attendance: %w", err)
		}
		records = append(records, daily)
	}

	return records, nil
}

func NewDailyAttendanceRepository(db *database.DB) attendance.DailyRepository {
	return &dailyAttendanceRepository{db: db}
}
