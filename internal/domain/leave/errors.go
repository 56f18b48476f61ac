package leave

import "errors"

var (
	ErrRequestNotFound  = errors.New("leave request not found")
	ErrAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
)
