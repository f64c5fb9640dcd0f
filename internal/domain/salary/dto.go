package salary

import (
	"github.com/opshq/office-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GenerateRequest struct {
	Year        int  `json:"year"`
	Month       int  `json:"month"`
	GeneratePDF bool `json:"generate_pdf"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.Year, r.Month) {
		if r.Month < 1 || r.Month > 12 {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
		}
		if r.Year < 1 {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a positive year"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	Month         string          `json:"month"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	Deductions    decimal.Decimal `json:"deductions"`
	NetSalary     decimal.Decimal `json:"net_salary"`
	SlipFile      *string         `json:"slip_file,omitempty"`
	SlipAvailable bool            `json:"slip_available"`
}
