package attendance

import (
	"context"
)

// AttendanceService defines business logic for punch sessions and snapshots.
type AttendanceService interface {
	// PunchIn opens a new session for today. Rejected with ErrBlockedByIssues
	// while unresolved issues exist on days strictly before today.
	PunchIn(ctx context.Context, req PunchInRequest) (SnapshotResponse, error)

	// PunchOut closes today's open session, optionally logging task time in
	// the same action under the remaining-minutes cap.
	PunchOut(ctx context.Context, req PunchOutRequest) (SnapshotResponse, error)

	// TodaySnapshot returns the employee's current-day read model.
	TodaySnapshot(ctx context.Context) (SnapshotResponse, error)

	// DaySummary returns worked minutes, the logging budget, and the sessions
	// for one calendar day ("YYYY-MM-DD").
	DaySummary(ctx context.Context, date string) (DaySummaryResponse, error)

	// Backfill supplies the missing punch-out for a past day and optionally
	// logs task time for that day.
	Backfill(ctx context.Context, req BackfillRequest) (DaySummaryResponse, error)

	// ManualEntry records a punch pair for a past day on behalf of an
	// employee (admin only), completing the linked manual request if any.
	ManualEntry(ctx context.Context, req ManualEntryRequest) (SessionResponse, error)

	// ListMySessions retrieves the employee's sessions with pagination.
	ListMySessions(ctx context.Context, filter MySessionsFilter) (ListSessionsResponse, error)
}
