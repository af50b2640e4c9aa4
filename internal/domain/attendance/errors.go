package attendance

import "errors"

// Attendance domain errors
var (
	// Punch errors
	ErrAlreadyPunchedIn = errors.New("you are already punched in")
	ErrNotPunchedIn     = errors.New("you are not punched in")
	ErrBlockedByIssues  = errors.New("unresolved attendance issues on earlier days block punching in")

	// Backfill errors
	ErrBackfillFutureDay   = errors.New("only days before today can be backfilled")
	ErrNoOpenSessionForDay = errors.New("no open session found for that day")
	ErrPunchOutBeforeIn    = errors.New("punch-out time must be after the punch-in time")

	// General errors
	ErrSessionNotFound    = errors.New("attendance session not found")
	ErrDayHasSessions     = errors.New("attendance already recorded for that day")
	ErrNotAllowedToRecord = errors.New("only admins can record manual entries")
)
