package leave

import (
	"time"

	"github.com/opshq/office-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	LeaveType string  `json:"leave_type"`
	FromDate  string  `json:"from_date"`
	ToDate    string  `json:"to_date"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *CreateLeaveRequest) Validate() (from, to time.Time, err error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "is required"})
	}
	from, fromOK := validator.IsValidDate(r.FromDate)
	if !fromOK {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "must be YYYY-MM-DD"})
	}
	to, toOK := validator.IsValidDate(r.ToDate)
	if !toOK {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must be YYYY-MM-DD"})
	}
	if fromOK && toOK && from.After(to) {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "must be on or before to_date"})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return from, to, nil
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	LeaveType    string  `json:"leave_type"`
	FromDate     string  `json:"from_date"`
	ToDate       string  `json:"to_date"`
	Reason       *string `json:"reason,omitempty"`
	Status       string  `json:"status"`
	Unpaid       bool    `json:"unpaid"`
}

type SummaryResponse struct {
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Cancelled int `json:"cancelled"`
}
