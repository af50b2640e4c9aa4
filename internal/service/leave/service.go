package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/pkg/session"
	"github.com/jackc/pgx/v5"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
}

func NewLeaveService(leaveRepo leave.LeaveRepository) leave.LeaveService {
	return &LeaveServiceImpl{LeaveRepository: leaveRepo}
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	today := time.Now().UTC().In(sess.Location()).Format("2006-01-02")
	if req.ForIssueDate && req.StartDate >= today {
		return leave.LeaveResponse{}, leave.ErrIssueDateNotInPast
	}

	overlap, err := s.LeaveRepository.HasOverlap(ctx, sess.EmployeeID, start, end)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	if overlap {
		return leave.LeaveResponse{}, leave.ErrOverlapsExisting
	}

	newReq := leave.Request{
		EmployeeID: sess.EmployeeID,
		Type:       req.Type,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	}

	// A single-day application filed to resolve a no-attendance issue skips
	// the approval queue so the issue clears immediately.
	if req.ForIssueDate {
		now := time.Now().UTC()
		newReq.Status = leave.StatusApproved
		newReq.AutoApproved = true
		newReq.DecidedAt = &now
	}

	created, err := s.LeaveRepository.Create(ctx, newReq)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.MapRequestToResponse(created), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, filter leave.MyLeavesFilter) (leave.ListLeavesResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return leave.ListLeavesResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, total, err := s.LeaveRepository.ListMine(ctx, sess.EmployeeID, filter)
	if err != nil {
		return leave.ListLeavesResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	resp := leave.ListLeavesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Leaves:     make([]leave.LeaveResponse, 0, len(requests)),
	}
	for _, r := range requests {
		resp.Leaves = append(resp.Leaves, leave.MapRequestToResponse(r))
	}

	return resp, nil
}

// ListPending implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPending(ctx context.Context) ([]leave.LeaveResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !sess.CanApprove() {
		return nil, leave.ErrNotAllowedToApprove
	}

	requests, err := s.LeaveRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}

	resp := make([]leave.LeaveResponse, 0, len(requests))
	for _, r := range requests {
		resp = append(resp, leave.MapRequestToResponse(r))
	}

	return resp, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req leave.DecideRequest) (leave.LeaveResponse, error) {
	return s.decide(ctx, req, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.DecideRequest) (leave.LeaveResponse, error) {
	return s.decide(ctx, req, leave.StatusRejected)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, req leave.DecideRequest, status string) (leave.LeaveResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !sess.CanApprove() {
		return leave.LeaveResponse{}, leave.ErrNotAllowedToApprove
	}

	existing, err := s.LeaveRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveResponse{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	if existing.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrAlreadyProcessed
	}

	if err := s.LeaveRepository.UpdateStatus(ctx, req.ID, status, sess.UserID, req.Note); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveResponse{}, leave.ErrAlreadyProcessed
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	updated, err := s.LeaveRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to reload leave request: %w", err)
	}

	return leave.MapRequestToResponse(updated), nil
}
