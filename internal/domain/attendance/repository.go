package attendance

import (
	"context"
	"time"
)

// SessionRepository defines data access for punch sessions.
type SessionRepository interface {
	// Create inserts a new session row
	Create(ctx context.Context, sess Session) (Session, error)

	// GetByID retrieves a session by ID
	GetByID(ctx context.Context, id string) (Session, error)

	// GetOpenSession retrieves the employee's single open session, if any.
	// Returns pgx.ErrNoRows-wrapping error when none is open.
	GetOpenSession(ctx context.Context, employeeID string) (Session, error)

	// ListByDay retrieves all sessions for one employee on one calendar day
	ListByDay(ctx context.Context, employeeID string, date time.Time) ([]Session, error)

	// ListByDateRange retrieves sessions for an employee with date in [from, to]
	ListByDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]Session, error)

	// ListMine retrieves sessions for one employee with filters and pagination
	ListMine(ctx context.Context, employeeID string, filter MySessionsFilter) ([]Session, int64, error)

	// Close sets the punch-out time and status on a session
	Close(ctx context.Context, id string, punchOut time.Time, status string) error

	// ListOpenBefore retrieves every open session dated strictly before the
	// cutoff day, across all employees. Used by the end-of-day job.
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]Session, error)
}
