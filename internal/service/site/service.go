package site

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/buildhq/sitetrack-backend-go/internal/domain/site"
)

type SiteServiceImpl struct {
	site.Repository
	storeTimeout time.Duration
}

// GetSite implements site.Service.
func (s *SiteServiceImpl) GetSite(ctx context.Context) (site.SiteResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	zone, err := s.Repository.GetActive(storeCtx)
	if err != nil {
		if errors.Is(err, site.ErrSiteNotFound) {
			return site.SiteResponse{}, site.ErrSiteNotFound
		}
		return site.SiteResponse{}, fmt.Errorf("failed to get site: %w", err)
	}

	return mapSiteToResponse(zone), nil
}

// UpdateSite implements site.Service. Changing the zone only affects how
// future submissions are classified; past classifications stay as recorded.
func (s *SiteServiceImpl) UpdateSite(ctx context.Context, req site.UpdateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	zone, err := s.Repository.GetActive(storeCtx)
	if err != nil {
		if errors.Is(err, site.ErrSiteNotFound) {
			return site.SiteResponse{}, site.ErrSiteNotFound
		}
		return site.SiteResponse{}, fmt.Errorf("failed to get site: %w", err)
	}

	if req.Name != nil {
		zone.Name = *req.Name
	}
	if req.Latitude != nil {
		zone.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		zone.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		zone.RadiusMeters = *req.RadiusMeters
	}

	updated, err := s.Repository.Update(storeCtx, zone)
	if err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to update site: %w", err)
	}

	return mapSiteToResponse(updated), nil
}

// mapSiteToResponse converts a Site entity to SiteResponse
func mapSiteToResponse(zone site.Site) site.SiteResponse {
	return site.SiteResponse{
		ID:           zone.ID,
		Name:         zone.Name,
		Latitude:     zone.Latitude,
		Longitude:    zone.Longitude,
		RadiusMeters: zone.RadiusMeters,
		UpdatedAt:    zone.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func NewSiteService(repo site.Repository, storeTimeout time.Duration) site.Service {
	return &SiteServiceImpl{
		Repository:   repo,
		storeTimeout: storeTimeout,
	}
}
