package activity

import "time"

// Entry is an append-only audit record. There is deliberately no update or
// delete path anywhere in the codebase.
type Entry struct {
	ID          string
	UserID      string
	Action      string // short label, e.g. "applied", "approved"
	EntityType  string
	EntityID    *string
	Description string
	CreatedAt   time.Time
}
