package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opshq/office-backend-go/internal/domain/employee"
	"github.com/opshq/office-backend-go/internal/domain/salary"
	"github.com/opshq/office-backend-go/internal/pkg/database"
	"github.com/opshq/office-backend-go/internal/pkg/email"
	"github.com/opshq/office-backend-go/internal/repository/postgresql"
)

// Engine runs the monthly payroll batch. Each employee is processed in
// its own transaction so one failure never loses another employee's
// result.
type Engine struct {
	db        *database.DB
	employees employee.EmployeeRepository
	salaries  salary.SalaryRepository
	calc      *Calculator
	slips     SlipGenerator
	mailer    email.EmailService
	logger    *slog.Logger

	// runTx wraps one employee's computation and upsert.
	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewEngine(
	db *database.DB,
	employees employee.EmployeeRepository,
	salaries salary.SalaryRepository,
	calc *Calculator,
	slips SlipGenerator,
	mailer email.EmailService,
	logger *slog.Logger,
) *Engine {
	e := &Engine{
		db:        db,
		employees: employees,
		salaries:  salaries,
		calc:      calc,
		slips:     slips,
		mailer:    mailer,
		logger:    logger,
	}
	e.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, e.db, fn)
	}
	return e
}

// SkippedEmployee records one employee the batch could not process.
type SkippedEmployee struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Reason     string `json:"reason"`
}

// RunSummary reports the outcome of a payroll batch.
type RunSummary struct {
	Month     string            `json:"month"`
	Processed int               `json:"processed"`
	Skipped   []SkippedEmployee `json:"skipped,omitempty"`
	Records   []salary.Record   `json:"-"`
}

// RunForMonth computes and persists salary records for every active
// employee. A failure for one employee is logged and reported in the
// summary; the batch continues. Payslip generation and email delivery
// are best effort and never fail the run.
func (e *Engine) RunForMonth(ctx context.Context, year, month int, generatePDFs bool) (RunSummary, error) {
	req := salary.GenerateRequest{Year: year, Month: month}
	if err := req.Validate(); err != nil {
		return RunSummary{}, err
	}

	monthKey := salary.MonthKey(year, month)
	summary := RunSummary{Month: monthKey}

	all, err := e.employees.List(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to list employees: %w", err)
	}

	for _, emp := range all {
		if emp.Status != employee.StatusActive {
			continue
		}

		var saved salary.Record
		err := e.runTx(ctx, func(txCtx context.Context) error {
			breakdown, err := e.calc.Compute(txCtx, emp, year, month)
			if err != nil {
				return err
			}

			saved, err = e.salaries.Upsert(txCtx, salary.Record{
				EmployeeID: emp.ID,
				Month:      breakdown.Month,
				BaseSalary: breakdown.BaseSalary,
				Deductions: breakdown.Deductions,
				NetSalary:  breakdown.NetSalary,
			})
			return err
		})
		if err != nil {
			e.logger.Error("payroll computation failed, skipping employee",
				"employee_id", emp.ID,
				"month", monthKey,
				"error", err,
			)
			summary.Skipped = append(summary.Skipped, SkippedEmployee{
				EmployeeID: emp.ID,
				Name:       emp.Name,
				Reason:     err.Error(),
			})
			continue
		}

		summary.Processed++

		if generatePDFs && e.slips != nil {
			e.attachSlip(ctx, &saved, emp)
		}

		summary.Records = append(summary.Records, saved)
	}

	e.logger.Info("payroll run finished",
		"month", monthKey,
		"processed", summary.Processed,
		"skipped", len(summary.Skipped),
	)

	return summary, nil
}

// attachSlip renders and stores the payslip, records its path, and mails
// it to the employee. Failures are logged; the salary record stands.
func (e *Engine) attachSlip(ctx context.Context, record *salary.Record, emp employee.Employee) {
	path, data, err := e.slips.Generate(ctx, *record, emp)
	if err != nil {
		e.logger.Error("failed to generate payslip",
			"employee_id", emp.ID,
			"month", record.Month,
			"error", err,
		)
		return
	}

	if err := e.salaries.SetSlipFile(ctx, record.ID, path); err != nil {
		e.logger.Error("failed to record payslip path",
			"employee_id", emp.ID,
			"month", record.Month,
			"error", err,
		)
		return
	}
	record.SlipFile = &path

	if e.mailer != nil {
		filename := SlipFilename(emp.ID, record.Month)
		if err := e.mailer.SendPayslip(emp.Email, record.Month, data, filename); err != nil {
			e.logger.Error("failed to email payslip",
				"employee_id", emp.ID,
				"month", record.Month,
				"error", err,
			)
		}
	}
}
