package attendance

import (
	"github.com/peopledesk/peopledesk-api/internal/pkg/validator"
)

type Filter struct {
	DateFrom *string // YYYY-MM-DD
	DateTo   *string // YYYY-MM-DD
	Page     int
	Limit    int
}

// CheckInRequest records today's check-in for the actor, or for EmployeeID
// when an admin files it on someone's behalf.
type CheckInRequest struct {
	EmployeeID *string `json:"employee_id"`
	Date       *string `json:"date"` // YYYY-MM-DD, defaults to today
	Status     *string `json:"status"`
	Notes      *string `json:"notes"`
}

func (r CheckInRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "Date must be YYYY-MM-DD"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Notes *string `json:"notes"`
}
