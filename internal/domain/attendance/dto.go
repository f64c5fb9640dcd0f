package attendance

import (
	"github.com/opshq/office-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Status string `json:"status,omitempty"` // PRESENT (default) or WFH
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != "" && r.Status != string(StatusPresent) && r.Status != string(StatusWFH) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'PRESENT' or 'WFH'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	Date          string  `json:"date"`
	CheckIn       *string `json:"check_in,omitempty"`
	CheckOut      *string `json:"check_out,omitempty"`
	Status        string  `json:"status"`
	WorkedMinutes int     `json:"worked_minutes"`
}

type StatusResponse struct {
	CheckedIn  bool                `json:"checked_in"`
	CheckedOut bool                `json:"checked_out"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

type SummaryResponse struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	WFH     int    `json:"wfh"`
	Absent  int    `json:"absent"`
}
