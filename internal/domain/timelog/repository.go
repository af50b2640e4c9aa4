package timelog

import (
	"context"
	"time"
)

// TaskRepository defines data access for loggable tasks.
type TaskRepository interface {
	List(ctx context.Context, activeOnly bool) ([]Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
}

// EntryRepository defines data access for time log entries.
type EntryRepository interface {
	// CreateBatch inserts all entries atomically; used by punch-out and
	// backfill submissions, which are all-or-nothing.
	CreateBatch(ctx context.Context, entries []Entry) ([]Entry, error)

	GetByID(ctx context.Context, id string) (Entry, error)

	// ListByDay retrieves one employee's entries for one calendar day
	ListByDay(ctx context.Context, employeeID string, date time.Time) ([]Entry, error)

	// SumMinutesByDay totals the minutes already logged on one day
	SumMinutesByDay(ctx context.Context, employeeID string, date time.Time) (int, error)

	Update(ctx context.Context, id string, minutes int, note *string) error
	Delete(ctx context.Context, id string) error
}
