package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/opshq/office-backend-go/internal/domain/employee"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeService interface {
	Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error)
	List(ctx context.Context) ([]employee.EmployeeResponse, error)
	Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (employee.SummaryResponse, error)
}

type EmployeeServiceImpl struct {
	employees employee.EmployeeRepository
}

func NewEmployeeService(employees employee.EmployeeRepository) EmployeeService {
	return &EmployeeServiceImpl{employees: employees}
}

// Create implements EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	emp := employee.Employee{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         employee.Role(req.Role),
		Department:   req.Department,
		Salary:       req.Salary,
		Status:       employee.StatusActive,
		PasswordHash: &hashStr,
	}
	if req.JoiningDate != nil {
		// Already validated as YYYY-MM-DD.
		d, _ := time.Parse("2006-01-02", *req.JoiningDate)
		emp.JoiningDate = &d
	}

	created, err := s.employees.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(created), nil
}

// GetByID implements EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(emp), nil
}

// List implements EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toEmployeeResponse(emp))
	}
	return responses, nil
}

// Update implements EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employees.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employees.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(emp), nil
}

// Delete implements EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.employees.Delete(ctx, id)
}

// Summary implements EmployeeService.
func (s *EmployeeServiceImpl) Summary(ctx context.Context) (employee.SummaryResponse, error) {
	active, err := s.employees.CountByStatus(ctx, employee.StatusActive)
	if err != nil {
		return employee.SummaryResponse{}, err
	}
	inactive, err := s.employees.CountByStatus(ctx, employee.StatusInactive)
	if err != nil {
		return employee.SummaryResponse{}, err
	}

	return employee.SummaryResponse{
		Total:    active + inactive,
		Active:   active,
		Inactive: inactive,
	}, nil
}

func toEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:         emp.ID,
		Name:       emp.Name,
		Email:      emp.Email,
		Phone:      emp.Phone,
		Role:       string(emp.Role),
		Department: emp.Department,
		Salary:     emp.Salary,
		Status:     string(emp.Status),
	}
	if emp.JoiningDate != nil {
		d := emp.JoiningDate.Format("2006-01-02")
		resp.JoiningDate = &d
	}
	return resp
}
