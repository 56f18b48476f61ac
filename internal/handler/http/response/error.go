package response

import (
	"errors"
	"net/http"

	"github.com/peopledesk/peopledesk-api/internal/authz"
	"github.com/peopledesk/peopledesk-api/internal/domain/attendance"
	"github.com/peopledesk/peopledesk-api/internal/domain/auth"
	"github.com/peopledesk/peopledesk-api/internal/domain/identity"
	"github.com/peopledesk/peopledesk-api/internal/domain/leave"
	"github.com/peopledesk/peopledesk-api/internal/domain/profile"
	"github.com/peopledesk/peopledesk-api/internal/domain/role"
	"github.com/peopledesk/peopledesk-api/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Authorization engine
	case errors.Is(err, authz.ErrForbidden):
		Forbidden(w, "You are not allowed to perform this action")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// Identity domain errors
	case errors.Is(err, identity.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, identity.ErrNotFound):
		NotFound(w, "Identity not found")

	// Role registry errors
	case errors.Is(err, role.ErrInvalidRole):
		BadRequest(w, "Unknown role", nil)
	case errors.Is(err, role.ErrAssignmentExists):
		Conflict(w, "Role already assigned to this user")
	case errors.Is(err, role.ErrAssignmentMissing):
		NotFound(w, "Role assignment not found")

	// Profile domain errors
	case errors.Is(err, profile.ErrProfileNotFound):
		NotFound(w, "Profile not found")
	case errors.Is(err, profile.ErrEmailExists):
		Conflict(w, "Email already used by another profile")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in for this day")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
