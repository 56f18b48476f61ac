package leave

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Terminal reports whether no further status transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Type string

const (
	TypeSick     Type = "sick"
	TypeVacation Type = "vacation"
	TypePersonal Type = "personal"
	TypeOther    Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSick, TypeVacation, TypePersonal, TypeOther:
		return true
	}
	return false
}

type Request struct {
	ID         string
	EmployeeID string
	LeaveType  Type
	StartDate  time.Time
	EndDate    time.Time
	DaysCount  int
	Reason     string
	Status     Status
	ReviewedBy *string
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined profile fields for display
	EmployeeName  *string
	EmployeeEmail *string
}

// DaysCount is the inclusive day count between start and end. Dates are
// normalized to UTC midnight first so timezone offsets cannot skew the
// division.
func DaysCount(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
