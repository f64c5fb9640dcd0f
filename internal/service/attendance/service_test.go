package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/opshq/office-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	byDay  map[string]attendance.Attendance // employeeID + "|" + date
	nextID int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{byDay: make(map[string]attendance.Attendance)}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	f.nextID++
	att.ID = string(rune('a' + f.nextID))
	f.byDay[dayKey(att.EmployeeID, att.Date)] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeDate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	att, ok := f.byDay[dayKey(employeeID, date)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (f *fakeAttendanceRepo) SetCheckOut(_ context.Context, id string, checkOut time.Time) (attendance.Attendance, error) {
	for key, att := range f.byDay {
		if att.ID == id {
			att.CheckOut = &checkOut
			f.byDay[key] = att
			return att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func authedContext(t *testing.T, employeeID, role string) context.Context {
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

func newTestService(repo attendance.AttendanceRepository, now time.Time) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		records: repo,
		now:     func() time.Time { return now },
	}
}

func TestCheckInCreatesPresentRecord(t *testing.T) {
	repo := newFakeAttendanceRepo()
	now := time.Date(2025, time.February, 3, 9, 15, 0, 0, time.UTC)
	svc := newTestService(repo, now)
	ctx := authedContext(t, "emp-1", "employee")

	resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "2025-02-03", resp.Date)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	require.NotNil(t, resp.CheckIn)
}

func TestCheckInTwiceSameDayRejected(t *testing.T) {
	repo := newFakeAttendanceRepo()
	now := time.Date(2025, time.February, 3, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)
	ctx := authedContext(t, "emp-1", "employee")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckInWFH(t *testing.T) {
	repo := newFakeAttendanceRepo()
	now := time.Date(2025, time.February, 3, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)
	ctx := authedContext(t, "emp-1", "employee")

	resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{Status: "WFH"})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusWFH), resp.Status)
}

func TestCheckOutClosesOpenSession(t *testing.T) {
	repo := newFakeAttendanceRepo()
	checkIn := time.Date(2025, time.February, 3, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, checkIn)
	ctx := authedContext(t, "emp-1", "employee")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	svc.now = func() time.Time { return checkIn.Add(8*time.Hour + 30*time.Minute) }
	resp, err := svc.CheckOut(ctx)
	require.NoError(t, err)

	require.NotNil(t, resp.CheckOut)
	assert.Equal(t, 510, resp.WorkedMinutes)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), time.Now().UTC())
	ctx := authedContext(t, "emp-1", "employee")

	_, err := svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
}

func TestCheckOutTwiceRejected(t *testing.T) {
	repo := newFakeAttendanceRepo()
	now := time.Date(2025, time.February, 3, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)
	ctx := authedContext(t, "emp-1", "employee")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx)
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestStatusReflectsDay(t *testing.T) {
	repo := newFakeAttendanceRepo()
	now := time.Date(2025, time.February, 3, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)
	ctx := authedContext(t, "emp-1", "employee")

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.CheckedIn)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	status, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
	assert.False(t, status.CheckedOut)
	require.NotNil(t, status.Attendance)
}
