package identity

import "context"

type Repository interface {
	Create(ctx context.Context, id Identity) (Identity, error)
	GetByID(ctx context.Context, id string) (Identity, error)
	GetByEmail(ctx context.Context, email string) (Identity, error)
	Delete(ctx context.Context, id string) error
}
