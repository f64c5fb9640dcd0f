package task

import "time"

type Task struct {
	ID          string
	Title       string
	Description *string
	AssignedTo  *string
	Deadline    *time.Time
	Status      Status
	Priority    Priority
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	AssigneeName *string
}

type Status string

const (
	StatusTodo       Status = "To-Do"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)
