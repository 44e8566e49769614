package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/buildhq/sitetrack-backend-go/internal/domain/worker"
)

type WorkerServiceImpl struct {
	worker.Repository
	storeTimeout time.Duration
}

// CreateWorker implements worker.Service.
func (w *WorkerServiceImpl) CreateWorker(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	storeCtx, cancel := context.WithTimeout(ctx, w.storeTimeout)
	defer cancel()

	data := worker.Worker{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: true,
	}

	created, err := w.Repository.Create(storeCtx, data)
	if err != nil {
		if errors.Is(err, worker.ErrEmailExists) {
			return worker.WorkerResponse{}, worker.ErrEmailExists
		}
		return worker.WorkerResponse{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return mapWorkerToResponse(created), nil
}

// ListWorkers implements worker.Service.
func (w *WorkerServiceImpl) ListWorkers(ctx context.Context) (worker.ListWorkersResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, w.storeTimeout)
	defer cancel()

	workers, err := w.Repository.ListActive(storeCtx)
	if err != nil {
		return worker.ListWorkersResponse{}, fmt.Errorf("failed to list workers: %w", err)
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, wk := range workers {
		responses = append(responses, mapWorkerToResponse(wk))
	}

	return worker.ListWorkersResponse{
		TotalCount: int64(len(responses)),
		Workers:    responses,
	}, nil
}

// mapWorkerToResponse converts a Worker entity to WorkerResponse
func mapWorkerToResponse(wk worker.Worker) worker.WorkerResponse {
	return worker.WorkerResponse{
		ID:       wk.ID,
		FullName: wk.FullName,
		Email:    wk.Email,
		Phone:    wk.Phone,
		IsActive: wk.IsActive,
	}
}

func NewWorkerService(repo worker.Repository, storeTimeout time.Duration) worker.Service {
	return &WorkerServiceImpl{
		Repository:   repo,
		storeTimeout: storeTimeout,
	}
}
