package activity

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) (Entry, error)
	List(ctx context.Context, limit int) ([]Entry, error)
}
