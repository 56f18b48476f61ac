package identity

import "time"

// Identity is the authenticated subject owned by the identity provider.
// Deleting an identity cascades to its profile, leave and attendance rows.
type Identity struct {
	ID              string
	Email           string
	PasswordHash    *string
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
