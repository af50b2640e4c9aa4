package timelog

import "errors"

var (
	ErrEntryNotFound = errors.New("time log entry not found")
	ErrTaskNotFound  = errors.New("task not found")
	ErrTaskInactive  = errors.New("task is no longer active")
	ErrNotEntryOwner = errors.New("time log entry belongs to another employee")
)
