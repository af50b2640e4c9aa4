package reconciliation

import (
	"context"
	"time"
)

// ManualRequestRepository defines data access for manual-entry requests.
type ManualRequestRepository interface {
	Create(ctx context.Context, req ManualRequest) (ManualRequest, error)

	GetByID(ctx context.Context, id string) (ManualRequest, error)

	// HasPendingForDay reports whether the employee already filed a pending
	// request for the given day.
	HasPendingForDay(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// PendingDatesInRange returns "YYYY-MM-DD" keys of the employee's pending
	// requests with date in [from, to].
	PendingDatesInRange(ctx context.Context, employeeID string, from, to time.Time) (map[string]bool, error)

	// ListPending retrieves all pending requests across employees (admin view)
	ListPending(ctx context.Context) ([]ManualRequest, error)

	// Complete marks the request done and records who acted on it
	Complete(ctx context.Context, id string, completedBy string, at time.Time) error
}
