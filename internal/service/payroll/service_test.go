package payroll

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/opshq/office-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fakeSalaryRepo) GetByID(_ context.Context, id string) (salary.Record, error) {
	for _, record := range f.records {
		if record.ID == id {
			return record, nil
		}
	}
	return salary.Record{}, salary.ErrRecordNotFound
}

func (f *fakeSalaryRepo) ListAll(_ context.Context) ([]salary.Record, error) {
	var out []salary.Record
	for _, record := range f.records {
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeSalaryRepo) ListByEmployee(_ context.Context, employeeID string) ([]salary.Record, error) {
	var out []salary.Record
	for _, record := range f.records {
		if record.EmployeeID == employeeID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeSalaryRepo) ListByMonth(_ context.Context, month string) ([]salary.Record, error) {
	var out []salary.Record
	for _, record := range f.records {
		if record.Month == month {
			out = append(out, record)
		}
	}
	return out, nil
}

type fakeStorage struct {
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, file io.Reader, path string, _ string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.files[path] = data
	return path, nil
}

func (f *fakeStorage) Download(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) Delete(_ context.Context, path string) error {
	delete(f.files, path)
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, path string) (bool, error) {
	_, ok := f.files[path]
	return ok, nil
}

func serviceContext(t *testing.T, employeeID, role string) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	_, tokenString, err := ja.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        role,
		"type":        "access",
	})
	require.NoError(t, err)

	token, err := ja.Decode(tokenString)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func seedRecord(repo *fakeSalaryRepo, employeeID, month string, slipFile *string) salary.Record {
	record, _ := repo.Upsert(context.Background(), salary.Record{
		EmployeeID: employeeID,
		Month:      month,
		BaseSalary: decimal.RequireFromString("30000.00"),
		Deductions: decimal.Zero,
		NetSalary:  decimal.RequireFromString("30000.00"),
	})
	if slipFile != nil {
		_ = repo.SetSlipFile(context.Background(), record.ID, *slipFile)
		record.SlipFile = slipFile
		repo.records[employeeID+"|"+month] = record
	}
	return record
}

func newTestPayrollService(salaries *fakeSalaryRepo, files *fakeStorage) PayrollService {
	return NewPayrollService(nil, salaries, files)
}

func TestListReturnsOwnRecordsOnly(t *testing.T) {
	repo := newFakeSalaryRepo()
	seedRecord(repo, "emp-1", "2025-02", nil)
	seedRecord(repo, "emp-2", "2025-02", nil)
	svc := newTestPayrollService(repo, newFakeStorage())

	records, err := svc.List(serviceContext(t, "emp-1", "employee"), nil)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "emp-1", records[0].EmployeeID)
}

func TestListAdminSeesAll(t *testing.T) {
	repo := newFakeSalaryRepo()
	seedRecord(repo, "emp-1", "2025-02", nil)
	seedRecord(repo, "emp-2", "2025-02", nil)
	svc := newTestPayrollService(repo, newFakeStorage())

	records, err := svc.List(serviceContext(t, "admin-1", "admin"), nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestListFiltersByMonth(t *testing.T) {
	repo := newFakeSalaryRepo()
	seedRecord(repo, "emp-1", "2025-01", nil)
	seedRecord(repo, "emp-1", "2025-02", nil)
	svc := newTestPayrollService(repo, newFakeStorage())

	month := "2025-02"
	records, err := svc.List(serviceContext(t, "admin-1", "admin"), &month)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-02", records[0].Month)

	records, err = svc.List(serviceContext(t, "emp-1", "employee"), &month)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-02", records[0].Month)
}

func TestListRejectsMalformedMonth(t *testing.T) {
	svc := newTestPayrollService(newFakeSalaryRepo(), newFakeStorage())

	for _, bad := range []string{"2025-2", "2025-13", "022025", "2025/02"} {
		month := bad
		_, err := svc.List(serviceContext(t, "admin-1", "admin"), &month)
		assert.ErrorIs(t, err, salary.ErrInvalidPeriod, "month %q", bad)
	}
}

func TestDownloadSlipStreamsStoredFile(t *testing.T) {
	repo := newFakeSalaryRepo()
	files := newFakeStorage()

	path := SlipPath("emp-1", "2025-02")
	files.files[path] = []byte("%PDF-1.4 fake")
	record := seedRecord(repo, "emp-1", "2025-02", &path)

	svc := newTestPayrollService(repo, files)

	rc, filename, err := svc.DownloadSlip(serviceContext(t, "emp-1", "employee"), record.ID)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
	assert.Equal(t, SlipFilename("emp-1", "2025-02"), filename)
}

func TestDownloadSlipMissingFileOnDisk(t *testing.T) {
	repo := newFakeSalaryRepo()

	// The record points at a path the storage no longer holds.
	path := SlipPath("emp-1", "2025-02")
	record := seedRecord(repo, "emp-1", "2025-02", &path)

	svc := newTestPayrollService(repo, newFakeStorage())

	_, _, err := svc.DownloadSlip(serviceContext(t, "emp-1", "employee"), record.ID)
	assert.ErrorIs(t, err, salary.ErrSlipNotFound)
}

func TestDownloadSlipNoSlipRecorded(t *testing.T) {
	repo := newFakeSalaryRepo()
	record := seedRecord(repo, "emp-1", "2025-02", nil)
	svc := newTestPayrollService(repo, newFakeStorage())

	_, _, err := svc.DownloadSlip(serviceContext(t, "emp-1", "employee"), record.ID)
	assert.ErrorIs(t, err, salary.ErrSlipNotFound)
}

func TestDownloadSlipHidesOthersRecords(t *testing.T) {
	repo := newFakeSalaryRepo()
	files := newFakeStorage()

	path := SlipPath("emp-1", "2025-02")
	files.files[path] = []byte("%PDF-1.4 fake")
	record := seedRecord(repo, "emp-1", "2025-02", &path)

	svc := newTestPayrollService(repo, files)

	_, _, err := svc.DownloadSlip(serviceContext(t, "emp-2", "employee"), record.ID)
	assert.ErrorIs(t, err, salary.ErrRecordNotFound)
}

func TestUploadSlipReplacesStoredFile(t *testing.T) {
	repo := newFakeSalaryRepo()
	files := newFakeStorage()
	record := seedRecord(repo, "emp-1", "2025-02", nil)

	svc := newTestPayrollService(repo, files)

	err := svc.UploadSlip(context.Background(), record.ID, bytes.NewReader([]byte("%PDF-1.4 uploaded")))
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SlipFile)
	assert.Equal(t, SlipPath("emp-1", "2025-02"), *stored.SlipFile)
	assert.Equal(t, []byte("%PDF-1.4 uploaded"), files.files[*stored.SlipFile])
}
