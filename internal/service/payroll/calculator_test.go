package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/opshq/office-backend-go/internal/domain/employee"
	"github.com/opshq/office-backend-go/internal/domain/leave"
	"github.com/opshq/office-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendance struct {
	present map[string]int
	err     error
}

func (s *stubAttendance) CountPresent(_ context.Context, employeeID string, _, _ time.Time) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.present[employeeID], nil
}

type stubLeaves struct {
	requests []leave.LeaveRequest
	err      error
}

func (s *stubLeaves) ListApprovedOverlapping(_ context.Context, _ string, _, _ time.Time) ([]leave.LeaveRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.requests, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testEmployee(base string) employee.Employee {
	salary := decimal.RequireFromString(base)
	return employee.Employee{
		ID:     "emp-1",
		Name:   "Asha Verma",
		Email:  "asha@example.com",
		Status: employee.StatusActive,
		Salary: &salary,
	}
}

// February 2025 has exactly 20 working days (Feb 1 is a Saturday).

func TestComputeFullAttendanceNoLeave(t *testing.T) {
	calc := NewCalculator(
		&stubAttendance{present: map[string]int{"emp-1": 20}},
		&stubLeaves{},
	)

	b, err := calc.Compute(context.Background(), testEmployee("30000.00"), 2025, 2)
	require.NoError(t, err)

	assert.Equal(t, "2025-02", b.Month)
	assert.Equal(t, 20, b.TotalWorkingDays)
	assert.Equal(t, 20, b.PaidDays)
	assert.True(t, b.Deductions.Equal(decimal.Zero), "deductions = %s", b.Deductions)
	assert.True(t, b.NetSalary.Equal(decimal.RequireFromString("30000.00")), "net = %s", b.NetSalary)
}

func TestComputeUnpaidLeave(t *testing.T) {
	// Feb 3-7 2025 is a full Monday-Friday week.
	calc := NewCalculator(
		&stubAttendance{present: map[string]int{"emp-1": 15}},
		&stubLeaves{requests: []leave.LeaveRequest{{
			EmployeeID: "emp-1",
			LeaveType:  "Unpaid",
			FromDate:   date(2025, time.February, 3),
			ToDate:     date(2025, time.February, 7),
			Status:     leave.StatusApproved,
		}}},
	)

	b, err := calc.Compute(context.Background(), testEmployee("30000.00"), 2025, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, b.LeaveDays)
	assert.Equal(t, 5, b.UnpaidLeaveDays)
	assert.Equal(t, 15, b.PaidDays)
	assert.True(t, b.Deductions.Equal(decimal.RequireFromString("7500.00")), "deductions = %s", b.Deductions)
	assert.True(t, b.EarnedSalary.Equal(decimal.RequireFromString("22500.00")), "earned = %s", b.EarnedSalary)
	assert.True(t, b.NetSalary.Equal(decimal.RequireFromString("15000.00")), "net = %s", b.NetSalary)
}

func TestComputePaidLeaveCoversGaps(t *testing.T) {
	// Feb 10-19 2025 spans 8 working days around one weekend.
	calc := NewCalculator(
		&stubAttendance{present: map[string]int{"emp-1": 12}},
		&stubLeaves{requests: []leave.LeaveRequest{{
			EmployeeID: "emp-1",
			LeaveType:  "Casual",
			FromDate:   date(2025, time.February, 10),
			ToDate:     date(2025, time.February, 19),
			Status:     leave.StatusApproved,
		}}},
	)

	b, err := calc.Compute(context.Background(), testEmployee("30000.00"), 2025, 2)
	require.NoError(t, err)

	assert.Equal(t, 8, b.LeaveDays)
	assert.Equal(t, 0, b.UnpaidLeaveDays)
	assert.Equal(t, 20, b.PaidDays)
	assert.True(t, b.Deductions.Equal(decimal.Zero))
	assert.True(t, b.NetSalary.Equal(decimal.RequireFromString("30000.00")), "net = %s", b.NetSalary)
}

func TestComputeLeaveClampedToMonth(t *testing.T) {
	// Leave runs Jan 20 - Feb 7; only the February weekdays count.
	calc := NewCalculator(
		&stubAttendance{present: map[string]int{"emp-1": 0}},
		&stubLeaves{requests: []leave.LeaveRequest{{
			EmployeeID: "emp-1",
			LeaveType:  "Sick",
			FromDate:   date(2025, time.January, 20),
			ToDate:     date(2025, time.February, 7),
			Status:     leave.StatusApproved,
		}}},
	)

	b, err := calc.Compute(context.Background(), testEmployee("30000.00"), 2025, 2)
	require.NoError(t, err)

	// Feb 3-7 are the only February working days in range.
	assert.Equal(t, 5, b.LeaveDays)
	assert.Equal(t, 5, b.PaidDays)
}

func TestComputePaidDaysCapped(t *testing.T) {
	calc := NewCalculator(
		&stubAttendance{present: map[string]int{"emp-1": 25}},
		&stubLeaves{requests: []leave.LeaveRequest{{
			EmployeeID: "emp-1",
			LeaveType:  "Casual",
			FromDate:   date(2025, time.February, 3),
			ToDate:     date(2025, time.February, 7),
			Status:     leave.StatusApproved,
		}}},
	)

	b, err := calc.Compute(context.Background(), testEmployee("30000.00"), 2025, 2)
	require.NoError(t, err)

	assert.Equal(t, 20, b.TotalWorkingDays)
	assert.Equal(t, 20, b.PaidDays)
	assert.True(t, b.NetSalary.Equal(decimal.RequireFromString("30000.00")))
}

func TestComputeNetNeverNegative(t *testing.T) {
	// Absent all month with three unpaid weeks: deductions exceed earnings.
	calc := NewCalculator(
		&stubAttendance{present: map[string]int{"emp-1": 0}},
		&stubLeaves{requests: []leave.LeaveRequest{{
			EmployeeID: "emp-1",
			LeaveType:  "LOP",
			FromDate:   date(2025, time.February, 3),
			ToDate:     date(2025, time.February, 21),
			Status:     leave.StatusApproved,
		}}},
	)

	b, err := calc.Compute(context.Background(), testEmployee("30000.00"), 2025, 2)
	require.NoError(t, err)

	assert.Equal(t, 15, b.UnpaidLeaveDays)
	assert.Equal(t, 0, b.PaidDays)
	assert.True(t, b.NetSalary.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, b.NetSalary.Equal(decimal.Zero), "net = %s", b.NetSalary)
}

func TestComputeRoundsHalfUp(t *testing.T) {
	calc := NewCalculator(
		&stubAttendance{present: map[string]int{"emp-1": 1}},
		&stubLeaves{},
	)
	calc.workingDays = func(_, _ time.Time) int { return 2 }

	// 100.01 * 1/2 = 50.005, which must round up to 50.01.
	b, err := calc.Compute(context.Background(), testEmployee("100.01"), 2025, 2)
	require.NoError(t, err)

	assert.True(t, b.EarnedSalary.Equal(decimal.RequireFromString("50.01")), "earned = %s", b.EarnedSalary)
}

func TestComputeZeroWorkingDays(t *testing.T) {
	calc := NewCalculator(
		&stubAttendance{present: map[string]int{"emp-1": 0}},
		&stubLeaves{},
	)
	calc.workingDays = func(_, _ time.Time) int { return 0 }

	b, err := calc.Compute(context.Background(), testEmployee("30000.00"), 2025, 2)
	require.NoError(t, err)

	assert.True(t, b.Deductions.Equal(decimal.Zero))
	assert.True(t, b.EarnedSalary.Equal(decimal.RequireFromString("30000.00")))
	assert.True(t, b.NetSalary.Equal(decimal.RequireFromString("30000.00")))
}

func TestComputeMissingSalaryDegradesToZero(t *testing.T) {
	calc := NewCalculator(
		&stubAttendance{present: map[string]int{"emp-1": 20}},
		&stubLeaves{},
	)

	emp := testEmployee("30000.00")
	emp.Salary = nil

	b, err := calc.Compute(context.Background(), emp, 2025, 2)
	require.NoError(t, err)

	assert.True(t, b.NetSalary.Equal(decimal.Zero))
	assert.True(t, b.Deductions.Equal(decimal.Zero))
}

func TestComputeRejectsInvalidMonth(t *testing.T) {
	calc := NewCalculator(&stubAttendance{}, &stubLeaves{})

	for _, month := range []int{0, 13, -1} {
		_, err := calc.Compute(context.Background(), testEmployee("30000.00"), 2025, month)
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs, "month %d", month)
	}
}

func TestComputeIdempotent(t *testing.T) {
	calc := NewCalculator(
		&stubAttendance{present: map[string]int{"emp-1": 15}},
		&stubLeaves{requests: []leave.LeaveRequest{{
			EmployeeID: "emp-1",
			LeaveType:  "Unpaid",
			FromDate:   date(2025, time.February, 3),
			ToDate:     date(2025, time.February, 7),
			Status:     leave.StatusApproved,
		}}},
	)

	first, err := calc.Compute(context.Background(), testEmployee("30000.00"), 2025, 2)
	require.NoError(t, err)
	second, err := calc.Compute(context.Background(), testEmployee("30000.00"), 2025, 2)
	require.NoError(t, err)

	assert.True(t, first.NetSalary.Equal(second.NetSalary))
	assert.True(t, first.Deductions.Equal(second.Deductions))
	assert.Equal(t, first.PaidDays, second.PaidDays)
}

func TestComputePropagatesReadErrors(t *testing.T) {
	readErr := errors.New("connection reset")

	calc := NewCalculator(&stubAttendance{err: readErr}, &stubLeaves{})
	_, err := calc.Compute(context.Background(), testEmployee("30000.00"), 2025, 2)
	assert.ErrorIs(t, err, readErr)

	calc = NewCalculator(&stubAttendance{present: map[string]int{}}, &stubLeaves{err: readErr})
	_, err = calc.Compute(context.Background(), testEmployee("30000.00"), 2025, 2)
	assert.ErrorIs(t, err, readErr)
}
