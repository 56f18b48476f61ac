package profile

import "time"

// Profile is the one-to-one employee record keyed by the identity id. It is
// auto-created by the signup bootstrap; a direct create is admin-only.
type Profile struct {
	ID         string // = identity id
	Email      string
	FullName   string
	Department *string
	Position   *string
	Phone      *string
	HireDate   *time.Time
	AvatarURL  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
