package attendance

import (
	"time"
)

type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusWFH     Status = "WFH"
)

// WorkedMinutes returns the minutes between check-in and check-out,
// zero while the session is still open.
func (a Attendance) WorkedMinutes() int {
	if a.CheckIn == nil || a.CheckOut == nil {
		return 0
	}
	d := a.CheckOut.Sub(*a.CheckIn)
	if d < 0 {
		return 0
	}
	return int(d.Minutes())
}
