package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"github.com/opshq/office-backend-go/internal/domain/employee"
	"github.com/opshq/office-backend-go/internal/domain/leave"
	"github.com/opshq/office-backend-go/internal/pkg/email"
)

type LeaveService interface {
	Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	ListMine(ctx context.Context) ([]leave.LeaveResponse, error)
	ListAll(ctx context.Context, status *leave.Status) ([]leave.LeaveResponse, error)
	Approve(ctx context.Context, id string) (leave.LeaveResponse, error)
	Reject(ctx context.Context, id string) (leave.LeaveResponse, error)
	Cancel(ctx context.Context, id string) (leave.LeaveResponse, error)
	Summary(ctx context.Context) (leave.SummaryResponse, error)
}

type LeaveServiceImpl struct {
	leaves    leave.LeaveRepository
	employees employee.EmployeeRepository
	mailer    email.EmailService
	logger    *slog.Logger
}

func NewLeaveService(
	leaves leave.LeaveRepository,
	employees employee.EmployeeRepository,
	mailer email.EmailService,
	logger *slog.Logger,
) LeaveService {
	return &LeaveServiceImpl{
		leaves:    leaves,
		employees: employees,
		mailer:    mailer,
		logger:    logger,
	}
}

// Create implements LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	from, to, err := req.Validate()
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	employeeID, _, err := callerIdentity(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	created, err := s.leaves.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  req.LeaveType,
		FromDate:   from,
		ToDate:     to,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toLeaveResponse(created), nil
}

// ListMine implements LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context) ([]leave.LeaveResponse, error) {
	employeeID, _, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.leaves.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	return toLeaveResponses(requests), nil
}

// ListAll implements LeaveService.
func (s *LeaveServiceImpl) ListAll(ctx context.Context, status *leave.Status) ([]leave.LeaveResponse, error) {
	requests, err := s.leaves.ListAll(ctx, status)
	if err != nil {
		return nil, err
	}

	return toLeaveResponses(requests), nil
}

// Approve implements LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return s.decide(ctx, id, leave.StatusApproved)
}

// Reject implements LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return s.decide(ctx, id, leave.StatusRejected)
}

// Cancel implements LeaveService. Only the requester may cancel, and
// only while the request is still pending.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, id string) (leave.LeaveResponse, error) {
	employeeID, _, err := callerIdentity(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if request.EmployeeID != employeeID {
		return leave.LeaveResponse{}, leave.ErrNotRequestOwner
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	if err := s.leaves.UpdateStatus(ctx, id, leave.StatusCancelled, employeeID); err != nil {
		return leave.LeaveResponse{}, err
	}

	updated, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return toLeaveResponse(updated), nil
}

// Summary implements LeaveService.
func (s *LeaveServiceImpl) Summary(ctx context.Context) (leave.SummaryResponse, error) {
	var summary leave.SummaryResponse
	counts := []struct {
		status leave.Status
		dst    *int
	}{
		{leave.StatusPending, &summary.Pending},
		{leave.StatusApproved, &summary.Approved},
		{leave.StatusRejected, &summary.Rejected},
		{leave.StatusCancelled, &summary.Cancelled},
	}
	for _, c := range counts {
		n, err := s.leaves.CountByStatus(ctx, c.status)
		if err != nil {
			return leave.SummaryResponse{}, err
		}
		*c.dst = n
	}

	return summary, nil
}

func (s *LeaveServiceImpl) decide(ctx context.Context, id string, status leave.Status) (leave.LeaveResponse, error) {
	adminID, _, err := callerIdentity(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	if err := s.leaves.UpdateStatus(ctx, id, status, adminID); err != nil {
		return leave.LeaveResponse{}, err
	}

	updated, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	s.notifyDecision(ctx, updated)

	return toLeaveResponse(updated), nil
}

// notifyDecision emails the requester. Delivery problems are logged and
// never surface to the caller.
func (s *LeaveServiceImpl) notifyDecision(ctx context.Context, request leave.LeaveRequest) {
	if s.mailer == nil {
		return
	}

	emp, err := s.employees.GetByID(ctx, request.EmployeeID)
	if err != nil {
		s.logger.Error("failed to load employee for leave notification",
			"leave_id", request.ID,
			"employee_id", request.EmployeeID,
			"error", err,
		)
		return
	}

	err = s.mailer.SendLeaveDecision(
		emp.Email,
		emp.Name,
		request.LeaveType,
		string(request.Status),
		request.FromDate.Format("2006-01-02"),
		request.ToDate.Format("2006-01-02"),
	)
	if err != nil {
		s.logger.Error("failed to send leave decision email",
			"leave_id", request.ID,
			"employee_id", request.EmployeeID,
			"error", err,
		)
	}
}

func toLeaveResponse(request leave.LeaveRequest) leave.LeaveResponse {
	return leave.LeaveResponse{
		ID:           request.ID,
		EmployeeID:   request.EmployeeID,
		EmployeeName: request.EmployeeName,
		LeaveType:    request.LeaveType,
		FromDate:     request.FromDate.Format("2006-01-02"),
		ToDate:       request.ToDate.Format("2006-01-02"),
		Reason:       request.Reason,
		Status:       string(request.Status),
		Unpaid:       request.IsUnpaid(),
	}
}

func toLeaveResponses(requests []leave.LeaveRequest) []leave.LeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toLeaveResponse(request))
	}
	return responses
}

func callerIdentity(ctx context.Context) (employeeID, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	role, _ = claims["role"].(string)

	return employeeID, role, nil
}
