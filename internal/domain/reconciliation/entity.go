package reconciliation

import "time"

type IssueType string

const (
	// IssueMissingPunchOut: a past day was left punched in.
	IssueMissingPunchOut IssueType = "missing_punch_out"
	// IssueAutoPunchOut: the end-of-day job force-closed a past day; the
	// employee must confirm the actual punch-out time.
	IssueAutoPunchOut IssueType = "auto_punch_out"
	// IssueNoAttendance: a past working day has no sessions and no leave.
	IssueNoAttendance IssueType = "no_attendance"
)

// Issue is one unresolved attendance anomaly on a single calendar day. Issues
// are derived from stored state on every fetch and never persisted.
type Issue struct {
	Date           string     `json:"date"` // "YYYY-MM-DD"
	Type           IssueType  `json:"type"`
	AutoPunchOutAt *time.Time `json:"auto_punch_out_at,omitempty"`
	// HasPendingRequest marks a no_attendance day the employee has already
	// asked an admin to fill in; the issue stays open until the admin acts.
	HasPendingRequest bool `json:"has_pending_request,omitempty"`
}

// Blocking reports whether the issue prevents new punch-ins: only days
// strictly before today count, today's own issues never block.
func (i Issue) Blocking(today string) bool {
	return i.Date < today
}

// FilterBlocking returns the subset of issues that block punching in.
func FilterBlocking(issues []Issue, today string) []Issue {
	blocking := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Blocking(today) {
			blocking = append(blocking, issue)
		}
	}
	return blocking
}

// ManualRequest statuses
const (
	RequestPending   = "pending"
	RequestCompleted = "completed"
)

// ManualRequest asks an admin to record attendance for a day the employee
// has none. The related no_attendance issue remains open until the admin
// records the entry, at which point the request is completed.
type ManualRequest struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	Message     *string
	Status      string
	CompletedBy *string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName *string
}
