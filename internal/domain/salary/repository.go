package salary

import "context"

type SalaryRepository interface {
	// FindByEmployeeMonth looks up the single record for (employeeID, month).
	// Returns ErrRecordNotFound when no row exists.
	FindByEmployeeMonth(ctx context.Context, employeeID, month string) (Record, error)

	// Upsert inserts the record or, when a row already exists for the
	// (employee_id, month) key, overwrites base_salary, deductions and
	// net_salary in place. slip_file is left untouched on conflict.
	Upsert(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Record, error)
	ListByMonth(ctx context.Context, month string) ([]Record, error)
	ListAll(ctx context.Context) ([]Record, error)
	SetSlipFile(ctx context.Context, id string, slipFile string) error
	Delete(ctx context.Context, id string) error
}
