package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/opshq/office-backend-go/internal/domain/salary"
	"github.com/opshq/office-backend-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryJoinColumns = `
	s.id, s.employee_id, s.month, s.base_salary, s.deductions, s.net_salary,
	s.slip_file, s.created_at, s.updated_at, e.name, e.email
`

func (r *salaryRepository) FindByEmployeeMonth(ctx context.Context, employeeID, month string) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryJoinColumns + `
		FROM salaries s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1 AND s.month = $2`

	record, err := scanSalaryRecord(q.QueryRow(ctx, query, employeeID, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Record{}, salary.ErrRecordNotFound
		}
		return salary.Record{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return record, nil
}

func (r *salaryRepository) Upsert(ctx context.Context, record salary.Record) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	// On conflict the existing slip_file column is deliberately left alone so
	// a recomputation does not discard a previously generated payslip.
	query := `
		INSERT INTO salaries (id, employee_id, month, base_salary, deductions, net_salary, slip_file)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			deductions = EXCLUDED.deductions,
			net_salary = EXCLUDED.net_salary,
			updated_at = NOW()
		RETURNING id, employee_id, month, base_salary, deductions, net_salary,
			slip_file, created_at, updated_at`

	var saved salary.Record
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Month, record.BaseSalary,
		record.Deductions, record.NetSalary, record.SlipFile,
	).Scan(
		&saved.ID, &saved.EmployeeID, &saved.Month, &saved.BaseSalary,
		&saved.Deductions, &saved.NetSalary, &saved.SlipFile,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return salary.Record{}, fmt.Errorf("failed to upsert salary record: %w", err)
	}

	return saved, nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id string) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryJoinColumns + `
		FROM salaries s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1`

	record, err := scanSalaryRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Record{}, salary.ErrRecordNotFound
		}
		return salary.Record{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return record, nil
}

func (r *salaryRepository) ListByEmployee(ctx context.Context, employeeID string) ([]salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryJoinColumns + `
		FROM salaries s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1
		ORDER BY s.month DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	return scanSalaryRecords(rows)
}

func (r *salaryRepository) ListByMonth(ctx context.Context, month string) ([]salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryJoinColumns + `
		FROM salaries s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.month = $1
		ORDER BY e.name`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	return scanSalaryRecords(rows)
}

func (r *salaryRepository) ListAll(ctx context.Context) ([]salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryJoinColumns + `
		FROM salaries s
		JOIN employees e ON e.id = s.employee_id
		ORDER BY s.month DESC, e.name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	return scanSalaryRecords(rows)
}

func (r *salaryRepository) SetSlipFile(ctx context.Context, id string, slipFile string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE salaries SET slip_file = $2, updated_at = NOW() WHERE id = $1`,
		id, slipFile,
	)
	if err != nil {
		return fmt.Errorf("failed to set slip file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrRecordNotFound
	}

	return nil
}

func (r *salaryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salaries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrRecordNotFound
	}

	return nil
}

func scanSalaryRecord(row pgx.Row) (salary.Record, error) {
	var record salary.Record
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.Month, &record.BaseSalary,
		&record.Deductions, &record.NetSalary, &record.SlipFile,
		&record.CreatedAt, &record.UpdatedAt, &record.EmployeeName, &record.EmployeeEmail,
	)
	return record, err
}

func scanSalaryRecords(rows pgx.Rows) ([]salary.Record, error) {
	var records []salary.Record
	for rows.Next() {
		record, err := scanSalaryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
