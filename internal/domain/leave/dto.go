package leave

import (
	"time"

	"github.com/peopledesk/peopledesk-api/internal/pkg/validator"
)

type Filter struct {
	Status    *Status
	LeaveType *Type
	StartDate *string // YYYY-MM-DD, inclusive lower bound
	EndDate   *string // YYYY-MM-DD, inclusive upper bound
	Page      int
	Limit     int
}

type SubmitRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Reason    string `json:"reason"`
}

// Dates returns the parsed range. Only valid after Validate.
func (r SubmitRequest) Dates() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

func (r SubmitRequest) Validate() error {
	var errs validator.ValidationErrors
	if !Type(r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "Leave type must be one of sick, vacation, personal, other"})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "Start date must be YYYY-MM-DD"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "End date must be YYYY-MM-DD"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "End date must not be before start date"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "Reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRequest patches non-status fields of a pending request. Status
// transitions go through UpdateStatus only.
type UpdateRequest struct {
	ID        string  `json:"-"`
	LeaveType *string `json:"leave_type"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Reason    *string `json:"reason"`
}

func (r UpdateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.LeaveType != nil && !Type(*r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "Leave type must be one of sick, vacation, personal, other"})
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "Start date must be YYYY-MM-DD"})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "End date must be YYYY-MM-DD"})
		}
	}
	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "Reason cannot be empty"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
