package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/opshq/office-backend-go/internal/domain/employee"
	"github.com/opshq/office-backend-go/internal/domain/leave"
	"github.com/opshq/office-backend-go/internal/domain/salary"
	"github.com/opshq/office-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// attendanceCounter is the slice of the attendance repository the
// calculator needs.
type attendanceCounter interface {
	CountPresent(ctx context.Context, employeeID string, start, end time.Time) (int, error)
}

// leaveLister is the slice of the leave repository the calculator needs.
type leaveLister interface {
	ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]leave.LeaveRequest, error)
}

// Breakdown is the full result of one salary computation. Day counts are
// kept alongside the money figures so payslips and logs can show how the
// numbers came about.
type Breakdown struct {
	Month            string
	TotalWorkingDays int
	PresentDays      int
	LeaveDays        int
	UnpaidLeaveDays  int
	PaidDays         int
	BaseSalary       decimal.Decimal
	EarnedSalary     decimal.Decimal
	Deductions       decimal.Decimal
	NetSalary        decimal.Decimal
}

// Calculator computes one employee's salary for one month from attendance
// and approved leave. It never writes anything.
type Calculator struct {
	attendance attendanceCounter
	leaves     leaveLister

	// workingDays counts payable weekdays in an inclusive range. Swappable
	// so the zero-working-days path can be exercised directly.
	workingDays func(start, end time.Time) int
}

func NewCalculator(att attendanceCounter, leaves leaveLister) *Calculator {
	return &Calculator{
		attendance:  att,
		leaves:      leaves,
		workingDays: calendar.CountWorkingDays,
	}
}

// Compute derives the salary breakdown for emp in the given period.
// Unpaid leave days deduct pay; other approved leave days count as paid.
// Paid days are capped at the month's working days and net salary is
// floored at zero.
func (c *Calculator) Compute(ctx context.Context, emp employee.Employee, year, month int) (Breakdown, error) {
	req := salary.GenerateRequest{Year: year, Month: month}
	if err := req.Validate(); err != nil {
		return Breakdown{}, err
	}

	first, last := calendar.MonthBounds(year, time.Month(month))
	totalWorkingDays := c.workingDays(first, last)

	presentDays, err := c.attendance.CountPresent(ctx, emp.ID, first, last)
	if err != nil {
		return Breakdown{}, fmt.Errorf("failed to count present days: %w", err)
	}

	approved, err := c.leaves.ListApprovedOverlapping(ctx, emp.ID, first, last)
	if err != nil {
		return Breakdown{}, fmt.Errorf("failed to list approved leave: %w", err)
	}

	leaveDays, unpaidLeaveDays := 0, 0
	for _, l := range approved {
		unpaid := l.IsUnpaid()
		for day := l.FromDate; !day.After(l.ToDate); day = day.AddDate(0, 0, 1) {
			if day.Before(first) || day.After(last) {
				continue
			}
			if !calendar.IsWorkingDay(day) {
				continue
			}
			leaveDays++
			if unpaid {
				unpaidLeaveDays++
			}
		}
	}

	payableLeaveDays := leaveDays - unpaidLeaveDays
	if payableLeaveDays < 0 {
		payableLeaveDays = 0
	}

	paidDays := presentDays + payableLeaveDays
	if paidDays > totalWorkingDays {
		paidDays = totalWorkingDays
	}

	base := emp.BaseSalary()

	var earned, deductions decimal.Decimal
	if totalWorkingDays > 0 {
		total := decimal.NewFromInt(int64(totalWorkingDays))
		deductions = base.Mul(decimal.NewFromInt(int64(unpaidLeaveDays))).Div(total).Round(2)
		earned = base.Mul(decimal.NewFromInt(int64(paidDays))).Div(total).Round(2)
	} else {
		deductions = decimal.Zero
		earned = base
	}

	net := earned.Sub(deductions)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return Breakdown{
		Month:            salary.MonthKey(year, month),
		TotalWorkingDays: totalWorkingDays,
		PresentDays:      presentDays,
		LeaveDays:        leaveDays,
		UnpaidLeaveDays:  unpaidLeaveDays,
		PaidDays:         paidDays,
		BaseSalary:       base,
		EarnedSalary:     earned,
		Deductions:       deductions,
		NetSalary:        net,
	}, nil
}
