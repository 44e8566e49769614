package http

import (
	"encoding/json"
	"net/http"

	"github.com/buildhq/sitetrack-backend-go/internal/domain/worker"
	"github.com/buildhq/sitetrack-backend-go/internal/handler/http/response"
)

type WorkerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
}

type workerHandlerImpl struct {
	workerService worker.Service
}

func NewWorkerHandler(workerService worker.Service) WorkerHandler {
	return &workerHandlerImpl{
		workerService: workerService,
	}
}

// List implements WorkerHandler.
func (h *workerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.workerService.ListWorkers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements WorkerHandler.
func (h *workerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worker.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workerService.CreateWorker(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worker registered", result)
}
