package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/opshq/office-backend-go/internal/domain/task"
	"github.com/opshq/office-backend-go/internal/pkg/database"
)

type taskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	query := `
		INSERT INTO tasks (id, title, description, assigned_to, deadline, status, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, title, description, assigned_to, deadline, status, priority,
			created_at, updated_at`

	var created task.Task
	err := q.QueryRow(ctx, query,
		t.ID, t.Title, t.Description, t.AssignedTo, t.Deadline, t.Status, t.Priority,
	).Scan(
		&created.ID, &created.Title, &created.Description, &created.AssignedTo,
		&created.Deadline, &created.Status, &created.Priority,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return created, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.title, t.description, t.assigned_to, t.deadline, t.status,
			t.priority, t.created_at, t.updated_at, e.name
		FROM tasks t
		LEFT JOIN employees e ON e.id = t.assigned_to
		WHERE t.id = $1`

	var t task.Task
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.Deadline,
		&t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt, &t.AssigneeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

func (r *taskRepository) List(ctx context.Context, assignedTo *string) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.title, t.description, t.assigned_to, t.deadline, t.status,
			t.priority, t.created_at, t.updated_at, e.name
		FROM tasks t
		LEFT JOIN employees e ON e.id = t.assigned_to
		WHERE ($1::text IS NULL OR t.assigned_to = $1)
		ORDER BY t.created_at DESC`

	rows, err := q.Query(ctx, query, assignedTo)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.Deadline,
			&t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt, &t.AssigneeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, req task.UpdateTaskRequest) error {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{}
	args := []interface{}{}
	argPos := 1

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.Title != nil {
		addClause("title", *req.Title)
	}
	if req.Description != nil {
		addClause("description", *req.Description)
	}
	if req.AssignedTo != nil {
		addClause("assigned_to", *req.AssignedTo)
	}
	if req.Deadline != nil {
		addClause("deadline", *req.Deadline)
	}
	if req.Priority != nil {
		addClause("priority", *req.Priority)
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argPos)
	args = append(args, req.ID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status task.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE tasks SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) CountByStatus(ctx context.Context, status task.Status) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	return count, nil
}
