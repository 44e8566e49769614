package site

import "context"

// Service defines business logic for site zone administration.
type Service interface {
	GetSite(ctx context.Context) (SiteResponse, error)
	UpdateSite(ctx context.Context, req UpdateSiteRequest) (SiteResponse, error)
}
