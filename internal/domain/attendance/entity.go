package attendance

import "time"

// Record is one attendance row. At most one exists per (employee, date);
// the table enforces that with a unique constraint.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    time.Time
	CheckOut   *time.Time
	Status     string // free-form, defaults to "present"
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined profile fields for display
	EmployeeName *string
}

const DefaultStatus = "present"
