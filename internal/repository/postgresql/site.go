package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/buildhq/sitetrack-backend-go/internal/domain/site"
	"github.com/buildhq/sitetrack-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type siteRepository struct {
	db *database.DB
}

// GetActive implements site.Repository.
func (r *siteRepository) GetActive(ctx context.Context) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters, created_at, updated_at
		FROM sites
		ORDER BY created_at
		LIMIT 1
	`

	var s site.Site
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.RadiusMeters, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to get active site: %w", err)
	}

	return s, nil
}

// Update implements site.Repository.
func (r *siteRepository) Update(ctx context.Context, s site.Site) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sites
		SET name = $2, latitude = $3, longitude = $4, radius_meters = $5, updated_at = $6
		WHERE id = $1
		RETURNING updated_at
	`

	s.UpdatedAt = time.Now().UTC()
	err := q.QueryRow(ctx, query, s.ID, s.Name, s.Latitude, s.Longitude, s.RadiusMeters, s.UpdatedAt).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to update site: %w", err)
	}

	return s, nil
}

// EnsureDefault implements site.Repository.
func (r *siteRepository) EnsureDefault(ctx context.Context, seed site.Site) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sites (id, name, latitude, longitude, radius_meters)
		SELECT $1, $2, $3, $4, $5
		WHERE NOT EXISTS (SELECT 1 FROM sites)
	`

	if _, err := q.Exec(ctx, query, uuid.NewString(), seed.Name, seed.Latitude, seed.Longitude, seed.RadiusMeters); err != nil {
		return fmt.Errorf("failed to seed default site: %w", err)
	}

	return nil
}

func NewSiteRepository(db *database.DB) site.Repository {
	return &siteRepository{db: db}
}
