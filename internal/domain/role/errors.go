package role

import "errors"

var (
	ErrInvalidRole       = errors.New("invalid role")
	ErrAssignmentExists  = errors.New("role already assigned to this user")
	ErrAssignmentMissing = errors.New("role assignment not found")
)
