package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/opshq/office-backend-go/internal/domain/leave"
	"github.com/opshq/office-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if request.ID == "" {
		request.ID = uuid.NewString()
	}

	query := `
		INSERT INTO leave_requests (id, employee_id, leave_type, from_date, to_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, leave_type, from_date, to_date, reason, status,
			decided_by, decided_at, created_at, updated_at`

	var created leave.LeaveRequest
	err := q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.LeaveType, request.FromDate,
		request.ToDate, request.Reason, request.Status,
	).Scan(
		&created.ID, &created.EmployeeID, &created.LeaveType, &created.FromDate,
		&created.ToDate, &created.Reason, &created.Status, &created.DecidedBy,
		&created.DecidedAt, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.leave_type, l.from_date, l.to_date, l.reason,
			l.status, l.decided_by, l.decided_at, l.created_at, l.updated_at, e.name
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1`

	var request leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&request.ID, &request.EmployeeID, &request.LeaveType, &request.FromDate,
		&request.ToDate, &request.Reason, &request.Status, &request.DecidedBy,
		&request.DecidedAt, &request.CreatedAt, &request.UpdatedAt, &request.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return request, nil
}

func (r *leaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.leave_type, l.from_date, l.to_date, l.reason,
			l.status, l.decided_by, l.decided_at, l.created_at, l.updated_at, e.name
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.employee_id = $1
		ORDER BY l.created_at DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return scanLeaveRequests(rows)
}

func (r *leaveRepository) ListAll(ctx context.Context, status *leave.Status) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.leave_type, l.from_date, l.to_date, l.reason,
			l.status, l.decided_by, l.decided_at, l.created_at, l.updated_at, e.name
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE ($1::text IS NULL OR l.status = $1)
		ORDER BY l.created_at DESC`

	rows, err := q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return scanLeaveRequests(rows)
}

func (r *leaveRepository) UpdateStatus(ctx context.Context, id string, status leave.Status, decidedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, decided_by = $3, decided_at = NOW(), updated_at = NOW()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, status, decidedBy)
	if err != nil {
		return fmt.Errorf("failed to update leave status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

func (r *leaveRepository) CountByStatus(ctx context.Context, status leave.Status) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	return count, nil
}

func (r *leaveRepository) ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.leave_type, l.from_date, l.to_date, l.reason,
			l.status, l.decided_by, l.decided_at, l.created_at, l.updated_at, e.name
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.employee_id = $1 AND l.status = $2
			AND l.from_date <= $4 AND l.to_date >= $3
		ORDER BY l.from_date`

	rows, err := q.Query(ctx, query, employeeID, leave.StatusApproved, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}
	defer rows.Close()

	return scanLeaveRequests(rows)
}

func scanLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for rows.Next() {
		var request leave.LeaveRequest
		err := rows.Scan(
			&request.ID, &request.EmployeeID, &request.LeaveType, &request.FromDate,
			&request.ToDate, &request.Reason, &request.Status, &request.DecidedBy,
			&request.DecidedAt, &request.CreatedAt, &request.UpdatedAt, &request.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}
