package dashboard

import (
	"context"
	"time"

	"github.com/opshq/office-backend-go/internal/domain/attendance"
	"github.com/opshq/office-backend-go/internal/domain/employee"
	"github.com/opshq/office-backend-go/internal/domain/leave"
	"github.com/opshq/office-backend-go/internal/domain/task"
)

// OverviewResponse is the admin landing-page counter set.
type OverviewResponse struct {
	ActiveEmployees int    `json:"active_employees"`
	PresentToday    int    `json:"present_today"`
	PendingLeaves   int    `json:"pending_leaves"`
	OpenTasks       int    `json:"open_tasks"`
	Date            string `json:"date"`
}

type DashboardService interface {
	Overview(ctx context.Context) (OverviewResponse, error)
}

type DashboardServiceImpl struct {
	employees  employee.EmployeeRepository
	attendance attendance.AttendanceRepository
	leaves     leave.LeaveRepository
	tasks      task.TaskRepository
}

func NewDashboardService(
	employees employee.EmployeeRepository,
	att attendance.AttendanceRepository,
	leaves leave.LeaveRepository,
	tasks task.TaskRepository,
) DashboardService {
	return &DashboardServiceImpl{
		employees:  employees,
		attendance: att,
		leaves:     leaves,
		tasks:      tasks,
	}
}

// Overview implements DashboardService.
func (s *DashboardServiceImpl) Overview(ctx context.Context) (OverviewResponse, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	active, err := s.employees.CountByStatus(ctx, employee.StatusActive)
	if err != nil {
		return OverviewResponse{}, err
	}

	present, err := s.attendance.CountByDateStatus(ctx, today, attendance.StatusPresent)
	if err != nil {
		return OverviewResponse{}, err
	}
	wfh, err := s.attendance.CountByDateStatus(ctx, today, attendance.StatusWFH)
	if err != nil {
		return OverviewResponse{}, err
	}

	pending, err := s.leaves.CountByStatus(ctx, leave.StatusPending)
	if err != nil {
		return OverviewResponse{}, err
	}

	todo, err := s.tasks.CountByStatus(ctx, task.StatusTodo)
	if err != nil {
		return OverviewResponse{}, err
	}
	inProgress, err := s.tasks.CountByStatus(ctx, task.StatusInProgress)
	if err != nil {
		return OverviewResponse{}, err
	}

	return OverviewResponse{
		ActiveEmployees: active,
		PresentToday:    present + wfh,
		PendingLeaves:   pending,
		OpenTasks:       todo + inProgress,
		Date:            today.Format("2006-01-02"),
	}, nil
}
