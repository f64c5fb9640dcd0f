package payroll

import (
	"context"
	"fmt"
	"io"

	"github.com/go-chi/jwtauth/v5"
	"github.com/opshq/office-backend-go/internal/domain/employee"
	"github.com/opshq/office-backend-go/internal/domain/salary"
	"github.com/opshq/office-backend-go/internal/pkg/storage"
	"github.com/opshq/office-backend-go/internal/pkg/validator"
)

// PayrollService is the request-facing surface over the payroll engine
// and stored salary records.
type PayrollService interface {
	// Generate runs the payroll batch for the requested period.
	Generate(ctx context.Context, req salary.GenerateRequest) (RunSummary, error)

	// List returns all records for admins, own records otherwise,
	// optionally narrowed to one "YYYY-MM" month.
	List(ctx context.Context, month *string) ([]salary.RecordResponse, error)

	// DownloadSlip streams the stored payslip for a record the caller may see.
	DownloadSlip(ctx context.Context, recordID string) (io.ReadCloser, string, error)

	// UploadSlip stores an externally produced payslip for a record,
	// replacing any generated one.
	UploadSlip(ctx context.Context, recordID string, file io.Reader) error

	// Delete removes a salary record and its stored slip, if any.
	Delete(ctx context.Context, recordID string) error
}

type PayrollServiceImpl struct {
	engine   *Engine
	salaries salary.SalaryRepository
	files    storage.FileStorage
}

func NewPayrollService(engine *Engine, salaries salary.SalaryRepository, files storage.FileStorage) PayrollService {
	return &PayrollServiceImpl{
		engine:   engine,
		salaries: salaries,
		files:    files,
	}
}

// Generate implements PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req salary.GenerateRequest) (RunSummary, error) {
	return s.engine.RunForMonth(ctx, req.Year, req.Month, req.GeneratePDF)
}

// List implements PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, month *string) ([]salary.RecordResponse, error) {
	role, employeeID, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}

	if month != nil && !validator.IsValidMonthKey(*month) {
		return nil, salary.ErrInvalidPeriod
	}

	var records []salary.Record
	switch {
	case role == string(employee.RoleAdmin) && month != nil:
		records, err = s.salaries.ListByMonth(ctx, *month)
	case role == string(employee.RoleAdmin):
		records, err = s.salaries.ListAll(ctx)
	default:
		records, err = s.salaries.ListByEmployee(ctx, employeeID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]salary.RecordResponse, 0, len(records))
	for _, record := range records {
		if month != nil && record.Month != *month {
			continue
		}
		responses = append(responses, toRecordResponse(record))
	}

	return responses, nil
}

// DownloadSlip implements PayrollService. Non-admin callers only reach
// their own records; anything else reads as not found.
func (s *PayrollServiceImpl) DownloadSlip(ctx context.Context, recordID string) (io.ReadCloser, string, error) {
	role, employeeID, err := callerIdentity(ctx)
	if err != nil {
		return nil, "", err
	}

	record, err := s.salaries.GetByID(ctx, recordID)
	if err != nil {
		return nil, "", err
	}

	if role != string(employee.RoleAdmin) && record.EmployeeID != employeeID {
		return nil, "", salary.ErrRecordNotFound
	}

	if record.SlipFile == nil || *record.SlipFile == "" {
		return nil, "", salary.ErrSlipNotFound
	}

	// The row may outlive the file, for instance after a storage wipe.
	ok, err := s.files.Exists(ctx, *record.SlipFile)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check payslip file: %w", err)
	}
	if !ok {
		return nil, "", salary.ErrSlipNotFound
	}

	rc, err := s.files.Download(ctx, *record.SlipFile)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open payslip: %w", err)
	}

	return rc, SlipFilename(record.EmployeeID, record.Month), nil
}

// UploadSlip implements PayrollService.
func (s *PayrollServiceImpl) UploadSlip(ctx context.Context, recordID string, file io.Reader) error {
	record, err := s.salaries.GetByID(ctx, recordID)
	if err != nil {
		return err
	}

	path, err := s.files.Upload(ctx, file, SlipPath(record.EmployeeID, record.Month), "application/pdf")
	if err != nil {
		return fmt.Errorf("failed to store uploaded payslip: %w", err)
	}

	return s.salaries.SetSlipFile(ctx, record.ID, path)
}

// Delete implements PayrollService.
func (s *PayrollServiceImpl) Delete(ctx context.Context, recordID string) error {
	record, err := s.salaries.GetByID(ctx, recordID)
	if err != nil {
		return err
	}

	if err := s.salaries.Delete(ctx, recordID); err != nil {
		return err
	}

	// The record is gone; a leftover file is only noise.
	if record.SlipFile != nil && *record.SlipFile != "" {
		_ = s.files.Delete(ctx, *record.SlipFile)
	}

	return nil
}

func toRecordResponse(record salary.Record) salary.RecordResponse {
	return salary.RecordResponse{
		ID:            record.ID,
		EmployeeID:    record.EmployeeID,
		EmployeeName:  record.EmployeeName,
		Month:         record.Month,
		BaseSalary:    record.BaseSalary,
		Deductions:    record.Deductions,
		NetSalary:     record.NetSalary,
		SlipFile:      record.SlipFile,
		SlipAvailable: record.SlipFile != nil && *record.SlipFile != "",
	}
}

func callerIdentity(ctx context.Context) (role, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	role, _ = claims["role"].(string)
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return role, employeeID, nil
}
