package profile

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmailExists     = errors.New("email already used by another profile")
)
