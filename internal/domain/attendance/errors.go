package attendance

import "errors"

var (
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrAlreadyCheckedIn  = errors.New("attendance already recorded for this day")
	ErrAlreadyCheckedOut = errors.New("already checked out")
)
