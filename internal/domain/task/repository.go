package task

import "context"

type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	List(ctx context.Context, assignedTo *string) ([]Task, error)
	Update(ctx context.Context, req UpdateTaskRequest) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status Status) (int, error)
}
