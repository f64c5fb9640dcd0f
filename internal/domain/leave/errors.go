package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrNotRequestOwner              = errors.New("leave request belongs to another employee")
	ErrInvalidDateRange             = errors.New("from_date must be on or before to_date")
)
