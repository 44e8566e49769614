package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildhq/sitetrack-backend-go/internal/domain/worker"
	"github.com/buildhq/sitetrack-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type workerRepository struct {
	db *database.DB
}

// Create implements worker.Repository.
func (r *workerRepository) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	w.ID = uuid.NewString()
	w.IsActive = true

	query := `
		INSERT INTO workers (id, full_name, email, phone, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, w.ID, w.FullName, w.Email, w.Phone, w.IsActive).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return worker.Worker{}, worker.ErrEmailExists
		}
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return w, nil
}

// ListActive implements worker.Repository.
func (r *workerRepository) ListActive(ctx context.Context) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, email, phone, is_active, created_at, updated_at
		FROM workers
		WHERE is_active
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		var w worker.Worker
		err := rows.Scan(&w.ID, &w.FullName, &w.Email, &w.Phone, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}

	return workers, nil
}

func NewWorkerRepository(db *database.DB) worker.Repository {
	return &workerRepository{db: db}
}
