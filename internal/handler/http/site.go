package http

import (
	"encoding/json"
	"net/http"

	"github.com/buildhq/sitetrack-backend-go/internal/domain/site"
	"github.com/buildhq/sitetrack-backend-go/internal/handler/http/response"
)

type SiteHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type siteHandlerImpl struct {
	siteService site.Service
}

func NewSiteHandler(siteService site.Service) SiteHandler {
	return &siteHandlerImpl{
		siteService: siteService,
	}
}

// Get implements SiteHandler.
func (h *siteHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.siteService.GetSite(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements SiteHandler.
func (h *siteHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req site.UpdateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.siteService.UpdateSite(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Site zone updated", result)
}
