package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListAll(ctx context.Context, status *Status) ([]LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status Status, decidedBy string) error
	CountByStatus(ctx context.Context, status Status) (int, error)

	// ListApprovedOverlapping returns Approved requests whose [from_date, to_date]
	// interval overlaps [start, end].
	ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveRequest, error)
}
