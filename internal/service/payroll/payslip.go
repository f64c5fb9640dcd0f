package payroll

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/opshq/office-backend-go/internal/domain/employee"
	"github.com/opshq/office-backend-go/internal/domain/salary"
	"github.com/opshq/office-backend-go/internal/pkg/pdfgen"
	"github.com/opshq/office-backend-go/internal/pkg/storage"
)

// SlipGenerator renders a payslip for a computed salary record and stores
// it, returning the stored path and the raw document bytes.
type SlipGenerator interface {
	Generate(ctx context.Context, record salary.Record, emp employee.Employee) (path string, data []byte, err error)
}

type pdfSlipGenerator struct {
	files storage.FileStorage
}

func NewPDFSlipGenerator(files storage.FileStorage) SlipGenerator {
	return &pdfSlipGenerator{files: files}
}

func (g *pdfSlipGenerator) Generate(ctx context.Context, record salary.Record, emp employee.Employee) (string, []byte, error) {
	lines := []string{
		"SALARY SLIP",
		"",
		fmt.Sprintf("Employee: %s", emp.Name),
		fmt.Sprintf("Employee ID: %s", emp.ID),
		fmt.Sprintf("Month: %s", record.Month),
		"",
		fmt.Sprintf("Base Salary: %s", record.BaseSalary.StringFixed(2)),
		fmt.Sprintf("Deductions: %s", record.Deductions.StringFixed(2)),
		fmt.Sprintf("Net Salary: %s", record.NetSalary.StringFixed(2)),
	}
	if emp.Department != nil {
		lines = append(lines, "", fmt.Sprintf("Department: %s", *emp.Department))
	}
	if emp.BankName != nil && emp.BankAccountNo != nil {
		lines = append(lines,
			fmt.Sprintf("Bank: %s", *emp.BankName),
			fmt.Sprintf("Account No: %s", *emp.BankAccountNo),
		)
	}
	lines = append(lines, "", fmt.Sprintf("Generated on %s", time.Now().Format("2006-01-02")))

	data, err := pdfgen.Document(lines)
	if err != nil {
		return "", nil, fmt.Errorf("failed to render payslip: %w", err)
	}

	path := SlipPath(emp.ID, record.Month)
	stored, err := g.files.Upload(ctx, bytes.NewReader(data), path, "application/pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to store payslip: %w", err)
	}

	return stored, data, nil
}

// SlipPath is the canonical storage location for a payslip.
func SlipPath(employeeID, month string) string {
	return fmt.Sprintf("salary_slips/salary_%s_%s.pdf", employeeID, month)
}

// SlipFilename is the name the payslip carries when downloaded or mailed.
func SlipFilename(employeeID, month string) string {
	return fmt.Sprintf("salary_%s_%s.pdf", employeeID, month)
}
