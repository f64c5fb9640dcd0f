package task

import (
	"github.com/opshq/office-backend-go/internal/pkg/validator"
)

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	Priority    string  `json:"priority,omitempty"` // defaults to Medium
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "is required"})
	}
	if r.Deadline != nil {
		if _, ok := validator.IsValidDate(*r.Deadline); !ok {
			errs = append(errs, validator.ValidationError{Field: "deadline", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.Priority != "" && !validator.IsInSlice(r.Priority, []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh)}) {
		errs = append(errs, validator.ValidationError{Field: "priority", Message: "must be 'Low', 'Medium' or 'High'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTaskRequest struct {
	ID          string
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

type TaskActionRequest struct {
	Status string `json:"status"`
}

func (r *TaskActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{string(StatusTodo), string(StatusInProgress), string(StatusCompleted)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'To-Do', 'In Progress' or 'Completed'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TaskResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	AssignedTo   *string `json:"assigned_to,omitempty"`
	AssigneeName *string `json:"assignee_name,omitempty"`
	Deadline     *string `json:"deadline,omitempty"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
}

type SummaryResponse struct {
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}
