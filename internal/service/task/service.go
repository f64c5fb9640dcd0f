package task

import (
	"context"
	"errors"
	"time"

	"github.com/opshq/office-backend-go/internal/domain/employee"
	"github.com/opshq/office-backend-go/internal/domain/task"
	"github.com/opshq/office-backend-go/internal/pkg/validator"
)

type TaskService interface {
	Create(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error)
	GetByID(ctx context.Context, id string) (task.TaskResponse, error)
	List(ctx context.Context, assignedTo *string) ([]task.TaskResponse, error)
	Update(ctx context.Context, req task.UpdateTaskRequest) (task.TaskResponse, error)
	UpdateStatus(ctx context.Context, id string, req task.TaskActionRequest) (task.TaskResponse, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (task.SummaryResponse, error)
}

type TaskServiceImpl struct {
	tasks     task.TaskRepository
	employees employee.EmployeeRepository
}

func NewTaskService(tasks task.TaskRepository, employees employee.EmployeeRepository) TaskService {
	return &TaskServiceImpl{
		tasks:     tasks,
		employees: employees,
	}
}

// Create implements TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	if req.AssignedTo != nil {
		if err := s.checkAssignee(ctx, *req.AssignedTo); err != nil {
			return task.TaskResponse{}, err
		}
	}

	priority := task.PriorityMedium
	if req.Priority != "" {
		priority = task.Priority(req.Priority)
	}

	t := task.Task{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      task.StatusTodo,
		Priority:    priority,
	}
	if req.Deadline != nil {
		d, _ := time.Parse("2006-01-02", *req.Deadline)
		t.Deadline = &d
	}

	created, err := s.tasks.Create(ctx, t)
	if err != nil {
		return task.TaskResponse{}, err
	}

	return toTaskResponse(created), nil
}

// GetByID implements TaskService.
func (s *TaskServiceImpl) GetByID(ctx context.Context, id string) (task.TaskResponse, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return toTaskResponse(t), nil
}

// List implements TaskService.
func (s *TaskServiceImpl) List(ctx context.Context, assignedTo *string) ([]task.TaskResponse, error) {
	tasks, err := s.tasks.List(ctx, assignedTo)
	if err != nil {
		return nil, err
	}

	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, toTaskResponse(t))
	}
	return responses, nil
}

// Update implements TaskService.
func (s *TaskServiceImpl) Update(ctx context.Context, req task.UpdateTaskRequest) (task.TaskResponse, error) {
	var errs validator.ValidationErrors
	if req.Deadline != nil {
		if _, ok := validator.IsValidDate(*req.Deadline); !ok {
			errs = append(errs, validator.ValidationError{Field: "deadline", Message: "must be YYYY-MM-DD"})
		}
	}
	if req.Priority != nil && !validator.IsInSlice(*req.Priority, []string{string(task.PriorityLow), string(task.PriorityMedium), string(task.PriorityHigh)}) {
		errs = append(errs, validator.ValidationError{Field: "priority", Message: "must be 'Low', 'Medium' or 'High'"})
	}
	if len(errs) > 0 {
		return task.TaskResponse{}, errs
	}

	if req.AssignedTo != nil && *req.AssignedTo != "" {
		if err := s.checkAssignee(ctx, *req.AssignedTo); err != nil {
			return task.TaskResponse{}, err
		}
	}

	if err := s.tasks.Update(ctx, req); err != nil {
		return task.TaskResponse{}, err
	}

	t, err := s.tasks.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return toTaskResponse(t), nil
}

// UpdateStatus implements TaskService.
func (s *TaskServiceImpl) UpdateStatus(ctx context.Context, id string, req task.TaskActionRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	if err := s.tasks.UpdateStatus(ctx, id, task.Status(req.Status)); err != nil {
		return task.TaskResponse{}, err
	}

	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return toTaskResponse(t), nil
}

// Delete implements TaskService.
func (s *TaskServiceImpl) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// Summary implements TaskService.
func (s *TaskServiceImpl) Summary(ctx context.Context) (task.SummaryResponse, error) {
	todo, err := s.tasks.CountByStatus(ctx, task.StatusTodo)
	if err != nil {
		return task.SummaryResponse{}, err
	}
	inProgress, err := s.tasks.CountByStatus(ctx, task.StatusInProgress)
	if err != nil {
		return task.SummaryResponse{}, err
	}
	completed, err := s.tasks.CountByStatus(ctx, task.StatusCompleted)
	if err != nil {
		return task.SummaryResponse{}, err
	}

	return task.SummaryResponse{
		Todo:       todo,
		InProgress: inProgress,
		Completed:  completed,
	}, nil
}

func (s *TaskServiceImpl) checkAssignee(ctx context.Context, employeeID string) error {
	_, err := s.employees.GetByID(ctx, employeeID)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return validator.ValidationErrors{
			{Field: "assigned_to", Message: "employee does not exist"},
		}
	}
	return err
}

func toTaskResponse(t task.Task) task.TaskResponse {
	resp := task.TaskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		AssignedTo:   t.AssignedTo,
		AssigneeName: t.AssigneeName,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
	}
	if t.Deadline != nil {
		d := t.Deadline.Format("2006-01-02")
		resp.Deadline = &d
	}
	return resp
}
