package leave

import (
	"context"
	"time"
)

// LeaveRepository defines data access for leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, req Request) (Request, error)

	GetByID(ctx context.Context, id string) (Request, error)

	// ListMine retrieves the employee's requests with filters and pagination
	ListMine(ctx context.Context, employeeID string, filter MyLeavesFilter) ([]Request, int64, error)

	// ListPending retrieves pending requests across employees (approver view)
	ListPending(ctx context.Context) ([]Request, error)

	// HasOverlap reports whether a non-rejected request already covers any
	// day in [start, end] for the employee.
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// ApprovedDatesInRange returns "YYYY-MM-DD" keys of days covered by the
	// employee's approved requests intersected with [from, to].
	ApprovedDatesInRange(ctx context.Context, employeeID string, from, to time.Time) (map[string]bool, error)

	// UpdateStatus records the approval decision
	UpdateStatus(ctx context.Context, id string, status string, decidedBy string, note *string) error
}
