package role

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Can manage any row and review leave
	RoleEmployee Role = "employee" // Regular employee, own rows only
	RoleNone     Role = ""         // No assignment yet - no elevated privilege
)

// Valid reports whether r is one of the assignable roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Assignment is one (user, role) pair. The store forbids duplicate pairs but
// not multiple distinct roles per user; RoleOf resolves that with admin
// precedence.
type Assignment struct {
	ID        string
	UserID    string
	Role      Role
	CreatedAt time.Time
}
