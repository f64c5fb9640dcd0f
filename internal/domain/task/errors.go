package task

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrNotTaskAssignee = errors.New("task is assigned to another employee")
)
