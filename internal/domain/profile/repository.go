package profile

import "context"

type Repository interface {
	Create(ctx context.Context, p Profile) (Profile, error)
	GetByID(ctx context.Context, id string) (Profile, error)
	GetByEmail(ctx context.Context, email string) (Profile, error)
	List(ctx context.Context, filter Filter) ([]Profile, int64, error)
	Update(ctx context.Context, req UpdateProfileRequest) error
	Delete(ctx context.Context, id string) error
}
