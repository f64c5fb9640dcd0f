package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	SetCheckOut(ctx context.Context, id string, checkOut time.Time) (Attendance, error)
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)

	// CountPresent counts PRESENT records for the employee in [start, end].
	CountPresent(ctx context.Context, employeeID string, start, end time.Time) (int, error)

	// CountByDateStatus counts records across all employees on a single day.
	CountByDateStatus(ctx context.Context, date time.Time, status Status) (int, error)
}
