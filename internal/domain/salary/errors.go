package salary

import "errors"

var (
	ErrRecordNotFound = errors.New("salary record not found")
	ErrSlipNotFound   = errors.New("salary slip file not available")
	ErrInvalidPeriod  = errors.New("invalid payroll period")
)
