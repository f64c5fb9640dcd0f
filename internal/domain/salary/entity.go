package salary

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one computed payroll result. At most one row exists per
// (employee_id, month) pair; re-runs overwrite the figures in place.
type Record struct {
	ID         string
	EmployeeID string
	Month      string // "YYYY-MM", zero-padded; load-bearing lookup key
	BaseSalary decimal.Decimal
	Deductions decimal.Decimal
	NetSalary  decimal.Decimal
	SlipFile   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName  *string
	EmployeeEmail *string
}

// MonthKey builds the canonical period key, e.g. "2025-03".
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
