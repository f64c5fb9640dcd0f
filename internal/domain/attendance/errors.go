package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyCheckedIn   = errors.New("already checked in for today")
	ErrNoOpenSession      = errors.New("no open attendance session for today")
	ErrAlreadyCheckedOut  = errors.New("already checked out for today")
	ErrInvalidStatus      = errors.New("invalid attendance status")
)
