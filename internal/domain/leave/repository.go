package leave

import "context"

type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string, filter Filter) ([]Request, int64, error)
	ListAll(ctx context.Context, filter Filter) ([]Request, int64, error)
	Update(ctx context.Context, req UpdateRequest) error
	// UpdateStatus stamps reviewer and review time together with the
	// transition.
	UpdateStatus(ctx context.Context, id string, status Status, reviewedBy string) error
	Delete(ctx context.Context, id string) error
}
