package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/opshq/office-backend-go/internal/domain/attendance"
	"github.com/opshq/office-backend-go/internal/pkg/calendar"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error)
	CheckOut(ctx context.Context) (attendance.AttendanceResponse, error)
	Status(ctx context.Context) (attendance.StatusResponse, error)
	ListMine(ctx context.Context, year, month int) ([]attendance.AttendanceResponse, error)
	Summary(ctx context.Context, date time.Time) (attendance.SummaryResponse, error)
}

type AttendanceServiceImpl struct {
	records attendance.AttendanceRepository

	// now is swappable for tests.
	now func() time.Time
}

func NewAttendanceService(records attendance.AttendanceRepository) AttendanceService {
	return &AttendanceServiceImpl{
		records: records,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CheckIn implements AttendanceService. One record per employee per day;
// a second check-in on the same day is rejected.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := truncateToDay(now)

	_, err = s.records.GetByEmployeeDate(ctx, employeeID, today)
	if err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, err
	}

	status := attendance.StatusPresent
	if req.Status != "" {
		status = attendance.Status(req.Status)
	}

	created, err := s.records.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       today,
		CheckIn:    &now,
		Status:     status,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(created), nil
}

// CheckOut implements AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := truncateToDay(now)

	record, err := s.records.GetByEmployeeDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNoOpenSession
		}
		return attendance.AttendanceResponse{}, err
	}
	if record.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	updated, err := s.records.SetCheckOut(ctx, record.ID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(updated), nil
}

// Status implements AttendanceService.
func (s *AttendanceServiceImpl) Status(ctx context.Context) (attendance.StatusResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	today := truncateToDay(s.now())
	record, err := s.records.GetByEmployeeDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.StatusResponse{}, nil
		}
		return attendance.StatusResponse{}, err
	}

	resp := toAttendanceResponse(record)
	return attendance.StatusResponse{
		CheckedIn:  true,
		CheckedOut: record.CheckOut != nil,
		Attendance: &resp,
	}, nil
}

// ListMine implements AttendanceService. Zero year/month means the
// current month.
func (s *AttendanceServiceImpl) ListMine(ctx context.Context, year, month int) ([]attendance.AttendanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	first, last := calendar.MonthBounds(year, time.Month(month))
	records, err := s.records.ListByEmployee(ctx, employeeID, first, last)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toAttendanceResponse(record))
	}
	return responses, nil
}

// Summary implements AttendanceService.
func (s *AttendanceServiceImpl) Summary(ctx context.Context, date time.Time) (attendance.SummaryResponse, error) {
	if date.IsZero() {
		date = s.now()
	}
	day := truncateToDay(date)

	present, err := s.records.CountByDateStatus(ctx, day, attendance.StatusPresent)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	wfh, err := s.records.CountByDateStatus(ctx, day, attendance.StatusWFH)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	absent, err := s.records.CountByDateStatus(ctx, day, attendance.StatusAbsent)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	return attendance.SummaryResponse{
		Date:    day.Format("2006-01-02"),
		Present: present,
		WFH:     wfh,
		Absent:  absent,
	}, nil
}

func toAttendanceResponse(record attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:            record.ID,
		EmployeeID:    record.EmployeeID,
		EmployeeName:  record.EmployeeName,
		Date:          record.Date.Format("2006-01-02"),
		CheckIn:       timePtrToString(record.CheckIn),
		CheckOut:      timePtrToString(record.CheckOut),
		Status:        string(record.Status),
		WorkedMinutes: record.WorkedMinutes(),
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02 15:04:05")
	return &formatted
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}
