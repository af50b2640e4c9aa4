package leave

import (
	"context"
)

// LeaveService defines business logic for leave applications and approvals.
type LeaveService interface {
	// Apply files a leave request. Requests flagged for an attendance issue
	// date are approved immediately; all others start pending.
	Apply(ctx context.Context, req ApplyRequest) (LeaveResponse, error)

	// ListMine retrieves the calling employee's requests.
	ListMine(ctx context.Context, filter MyLeavesFilter) (ListLeavesResponse, error)

	// ListPending retrieves requests waiting for a decision (approvers only).
	ListPending(ctx context.Context) ([]LeaveResponse, error)

	// Approve and Reject record an approver's decision.
	Approve(ctx context.Context, req DecideRequest) (LeaveResponse, error)
	Reject(ctx context.Context, req DecideRequest) (LeaveResponse, error)
}
