package reconciliation

import (
	"context"
)

// ReconciliationService derives attendance issues and manages the
// manual-entry remediation path. The backfill and leave remediations live in
// the attendance and leave services respectively.
type ReconciliationService interface {
	// ListIssues derives the calling employee's issues for one month.
	ListIssues(ctx context.Context, req ListIssuesRequest) (IssueListResponse, error)

	// BlockingIssues derives the issues that currently block the employee
	// from punching in (all unresolved issues on days strictly before today).
	BlockingIssues(ctx context.Context, employeeID string, timezone string) ([]Issue, error)

	// RequestManualEntry files a pending request for an admin to record
	// attendance for a past day.
	RequestManualEntry(ctx context.Context, req ManualRequestInput) (ManualRequestResponse, error)

	// ListPendingRequests retrieves open requests across employees (admin).
	ListPendingRequests(ctx context.Context) ([]ManualRequestResponse, error)
}
