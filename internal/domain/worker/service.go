package worker

import "context"

// Service defines business logic for the worker registry.
type Service interface {
	CreateWorker(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	ListWorkers(ctx context.Context) (ListWorkersResponse, error)
}
