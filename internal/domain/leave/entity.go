package leave

import (
	"strings"
	"time"
)

type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  string
	FromDate   time.Time
	ToDate     time.Time
	Reason     *string
	Status     Status
	DecidedBy  *string
	DecidedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

// unpaidCategories are the leave types that reduce pay (loss-of-pay leave).
// Matched case-insensitively against the free-form leave_type field.
var unpaidCategories = []string{"unpaid", "lop", "without pay"}

// IsUnpaid reports whether the request's type falls in the unpaid category.
func (r LeaveRequest) IsUnpaid() bool {
	return IsUnpaidType(r.LeaveType)
}

func IsUnpaidType(leaveType string) bool {
	lt := strings.ToLower(strings.TrimSpace(leaveType))
	for _, c := range unpaidCategories {
		if lt == c {
			return true
		}
	}
	return false
}
