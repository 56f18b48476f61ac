package role

import "context"

// Repository is the role registry. RoleOf runs on the trusted path: it is a
// plain read that never re-enters the authorization engine, so it is safe to
// call while evaluating policy for some other operation.
type Repository interface {
	// RoleOf returns the effective role for a user. When a user somehow
	// holds several assignments, admin wins. No assignment returns RoleNone.
	RoleOf(ctx context.Context, userID string) (Role, error)
	Assign(ctx context.Context, userID string, r Role) (Assignment, error)
	Revoke(ctx context.Context, userID string, r Role) error
	ListByUser(ctx context.Context, userID string) ([]Assignment, error)
}
