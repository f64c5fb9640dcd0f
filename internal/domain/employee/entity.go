package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	Name          string
	Email         string
	Phone         *string
	Role          Role
	Department    *string
	Salary        *decimal.Decimal
	JoiningDate   *time.Time
	Status        Status
	PasswordHash  *string
	Birthday      *time.Time
	Gender        *string
	MaritalStatus *string
	PersonalEmail *string
	BankName      *string
	BankAccountNo *string
	IFSCCode      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// BaseSalary returns the employee's monthly base pay, zero when unset.
// Payroll never fails because salary is missing; it degrades to zero pay.
func (e Employee) BaseSalary() decimal.Decimal {
	if e.Salary == nil {
		return decimal.Zero
	}
	return *e.Salary
}
