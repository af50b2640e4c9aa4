package reconciliation

import "errors"

var (
	ErrRequestNotFound         = errors.New("manual entry request not found")
	ErrRequestAlreadyCompleted = errors.New("manual entry request already completed")
	ErrRequestExists           = errors.New("a manual entry request for that day is already pending")
	ErrRequestFutureDay        = errors.New("only days before today can be requested")
)
