package attendance

import (
	"context"
	"time"
)

type Repository interface {
	// Create fails with ErrAlreadyCheckedIn when a record for the same
	// (employee, date) already exists; concurrent check-ins race on the
	// unique constraint, not on a prior read.
	Create(ctx context.Context, rec Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	ListByEmployee(ctx context.Context, employeeID string, filter Filter) ([]Record, int64, error)
	ListAll(ctx context.Context, filter Filter) ([]Record, int64, error)
	SetCheckOut(ctx context.Context, id string, at time.Time, notes *string) error
	Delete(ctx context.Context, id string) error
}
