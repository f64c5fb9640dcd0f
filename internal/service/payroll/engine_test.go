package payroll

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/opshq/office-backend-go/internal/domain/employee"
	"github.com/opshq/office-backend-go/internal/domain/leave"
	"github.com/opshq/office-backend-go/internal/domain/salary"
	"github.com/opshq/office-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

type fakeSalaryRepo struct {
	salary.SalaryRepository
	records map[string]salary.Record // keyed employeeID + "|" + month
	nextID  int
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{records: make(map[string]salary.Record)}
}

func (f *fakeSalaryRepo) Upsert(_ context.Context, record salary.Record) (salary.Record, error) {
	key := record.EmployeeID + "|" + record.Month
	if existing, ok := f.records[key]; ok {
		existing.BaseSalary = record.BaseSalary
		existing.Deductions = record.Deductions
		existing.NetSalary = record.NetSalary
		f.records[key] = existing
		return existing, nil
	}
	f.nextID++
	record.ID = string(rune('a' + f.nextID))
	f.records[key] = record
	return record, nil
}

func (f *fakeSalaryRepo) SetSlipFile(_ context.Context, id string, slipFile string) error {
	for key, record := range f.records {
		if record.ID == id {
			record.SlipFile = &slipFile
			f.records[key] = record
			return nil
		}
	}
	return salary.ErrRecordNotFound
}

type fakeSlipGenerator struct {
	calls int
	err   error
}

func (f *fakeSlipGenerator) Generate(_ context.Context, record salary.Record, emp employee.Employee) (string, []byte, error) {
	f.calls++
	if f.err != nil {
		return "", nil, f.err
	}
	return SlipPath(emp.ID, record.Month), []byte("%PDF-1.4 fake"), nil
}

type fakeMailer struct {
	sent        []string
	attachments [][]byte
	err         error
}

func (f *fakeMailer) SendLeaveDecision(to, _, _, _, _, _ string) error { return nil }

func (f *fakeMailer) SendPayslip(to, _ string, attachment []byte, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	f.attachments = append(f.attachments, attachment)
	return nil
}

type perEmployeeAttendance struct {
	present map[string]int
	fail    map[string]error
}

func (p *perEmployeeAttendance) CountPresent(_ context.Context, employeeID string, _, _ time.Time) (int, error) {
	if err, ok := p.fail[employeeID]; ok {
		return 0, err
	}
	return p.present[employeeID], nil
}

type noLeaves struct{}

func (noLeaves) ListApprovedOverlapping(_ context.Context, _ string, _, _ time.Time) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func activeEmployee(id, name string, base string) employee.Employee {
	s := decimal.RequireFromString(base)
	return employee.Employee{
		ID:     id,
		Name:   name,
		Email:  id + "@example.com",
		Status: employee.StatusActive,
		Salary: &s,
	}
}

func newTestEngine(
	employees []employee.Employee,
	salaries *fakeSalaryRepo,
	att *perEmployeeAttendance,
	slips SlipGenerator,
	mailer *fakeMailer,
) *Engine {
	calc := NewCalculator(att, noLeaves{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := &Engine{
		employees: &fakeEmployeeRepo{employees: employees},
		salaries:  salaries,
		calc:      calc,
		slips:     slips,
		logger:    logger,
	}
	if mailer != nil {
		e.mailer = mailer
	}
	e.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
	return e
}

func TestRunForMonthProcessesActiveEmployees(t *testing.T) {
	inactive := activeEmployee("emp-3", "Gone", "10000.00")
	inactive.Status = employee.StatusInactive

	salaries := newFakeSalaryRepo()
	e := newTestEngine(
		[]employee.Employee{
			activeEmployee("emp-1", "Asha", "30000.00"),
			activeEmployee("emp-2", "Ravi", "20000.00"),
			inactive,
		},
		salaries,
		&perEmployeeAttendance{present: map[string]int{"emp-1": 20, "emp-2": 20}},
		nil, nil,
	)

	summary, err := e.RunForMonth(context.Background(), 2025, 2, false)
	require.NoError(t, err)

	assert.Equal(t, "2025-02", summary.Month)
	assert.Equal(t, 2, summary.Processed)
	assert.Empty(t, summary.Skipped)
	assert.Len(t, salaries.records, 2)
}

func TestRunForMonthSkipsAndContinuesOnFailure(t *testing.T) {
	salaries := newFakeSalaryRepo()
	e := newTestEngine(
		[]employee.Employee{
			activeEmployee("emp-1", "Asha", "30000.00"),
			activeEmployee("emp-2", "Ravi", "20000.00"),
			activeEmployee("emp-3", "Meera", "25000.00"),
		},
		salaries,
		&perEmployeeAttendance{
			present: map[string]int{"emp-1": 20, "emp-3": 18},
			fail:    map[string]error{"emp-2": errors.New("connection reset")},
		},
		nil, nil,
	)

	summary, err := e.RunForMonth(context.Background(), 2025, 2, false)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	require.Len(t, summary.Skipped, 1)
	assert.Equal(t, "emp-2", summary.Skipped[0].EmployeeID)
	assert.Contains(t, summary.Skipped[0].Reason, "connection reset")

	// The failing employee has no record; the others do.
	assert.Len(t, salaries.records, 2)
}

func TestRunForMonthUpsertKeepsOneRowPerKey(t *testing.T) {
	salaries := newFakeSalaryRepo()
	e := newTestEngine(
		[]employee.Employee{activeEmployee("emp-1", "Asha", "30000.00")},
		salaries,
		&perEmployeeAttendance{present: map[string]int{"emp-1": 20}},
		nil, nil,
	)

	_, err := e.RunForMonth(context.Background(), 2025, 2, false)
	require.NoError(t, err)
	summary, err := e.RunForMonth(context.Background(), 2025, 2, false)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Len(t, salaries.records, 1)

	record := salaries.records["emp-1|2025-02"]
	assert.True(t, record.NetSalary.Equal(decimal.RequireFromString("30000.00")))
}

func TestRunForMonthGeneratesAndMailsSlips(t *testing.T) {
	salaries := newFakeSalaryRepo()
	slips := &fakeSlipGenerator{}
	mailer := &fakeMailer{}

	e := newTestEngine(
		[]employee.Employee{activeEmployee("emp-1", "Asha", "30000.00")},
		salaries,
		&perEmployeeAttendance{present: map[string]int{"emp-1": 20}},
		slips, mailer,
	)

	summary, err := e.RunForMonth(context.Background(), 2025, 2, true)
	require.NoError(t, err)

	assert.Equal(t, 1, slips.calls)
	require.Len(t, summary.Records, 1)
	require.NotNil(t, summary.Records[0].SlipFile)
	assert.Equal(t, SlipPath("emp-1", "2025-02"), *summary.Records[0].SlipFile)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "emp-1@example.com", mailer.sent[0])
	assert.NotEmpty(t, mailer.attachments[0])
}

func TestRunForMonthSlipFailureDoesNotFailRun(t *testing.T) {
	salaries := newFakeSalaryRepo()
	slips := &fakeSlipGenerator{err: errors.New("disk full")}

	e := newTestEngine(
		[]employee.Employee{activeEmployee("emp-1", "Asha", "30000.00")},
		salaries,
		&perEmployeeAttendance{present: map[string]int{"emp-1": 20}},
		slips, nil,
	)

	summary, err := e.RunForMonth(context.Background(), 2025, 2, true)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	require.Len(t, summary.Records, 1)
	assert.Nil(t, summary.Records[0].SlipFile)
}

func TestRunForMonthMailFailureDoesNotFailRun(t *testing.T) {
	salaries := newFakeSalaryRepo()
	mailer := &fakeMailer{err: errors.New("smtp unreachable")}

	e := newTestEngine(
		[]employee.Employee{activeEmployee("emp-1", "Asha", "30000.00")},
		salaries,
		&perEmployeeAttendance{present: map[string]int{"emp-1": 20}},
		&fakeSlipGenerator{}, mailer,
	)

	summary, err := e.RunForMonth(context.Background(), 2025, 2, true)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	require.Len(t, summary.Records, 1)
	require.NotNil(t, summary.Records[0].SlipFile)
}

func TestRunForMonthRejectsInvalidPeriod(t *testing.T) {
	e := newTestEngine(nil, newFakeSalaryRepo(), &perEmployeeAttendance{}, nil, nil)

	_, err := e.RunForMonth(context.Background(), 2025, 13, false)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}
