package leave

import "errors"

var (
	ErrLeaveNotFound       = errors.New("leave request not found")
	ErrAlreadyProcessed    = errors.New("leave request already processed")
	ErrOverlapsExisting    = errors.New("leave request overlaps an existing one")
	ErrInvalidDateRange    = errors.New("end date must not be before start date")
	ErrNotAllowedToApprove = errors.New("not allowed to approve or reject leave requests")
	ErrIssueDateNotInPast  = errors.New("leave for an attendance issue must target a day before today")
)
