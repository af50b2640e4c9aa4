package reconciliation

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/domain/reconciliation"
	"github.com/chronohr/attendance-backend-go/internal/pkg/session"
)

type ReconciliationServiceImpl struct {
	sessionRepo attendance.SessionRepository
	leaveRepo   leave.LeaveRepository
	requestRepo reconciliation.ManualRequestRepository

	// now overrides the clock source, for tests. Defaults to time.Now.
	now func() time.Time
}

func NewReconciliationService(
	sessionRepo attendance.SessionRepository,
	leaveRepo leave.LeaveRepository,
	requestRepo reconciliation.ManualRequestRepository,
) reconciliation.ReconciliationService {
	return &ReconciliationServiceImpl{
		sessionRepo: sessionRepo,
		leaveRepo:   leaveRepo,
		requestRepo: requestRepo,
		now:         time.Now,
	}
}

// deriveMonth gathers the stored state for one employee-month and rebuilds
// its issues.
func (s *ReconciliationServiceImpl) deriveMonth(ctx context.Context, employeeID string, year int, month time.Month, today string) ([]reconciliation.Issue, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	sessions, err := s.sessionRepo.ListByDateRange(ctx, employeeID, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to list month sessions: %w", err)
	}

	leaveDates, err := s.leaveRepo.ApprovedDatesInRange(ctx, employeeID, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave dates: %w", err)
	}

	requestDates, err := s.requestRepo.PendingDatesInRange(ctx, employeeID, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending request dates: %w", err)
	}

	return reconciliation.DeriveIssues(reconciliation.DeriveInput{
		Year:         year,
		Month:        month,
		Today:        today,
		Sessions:     sessions,
		LeaveDates:   leaveDates,
		RequestDates: requestDates,
	}), nil
}

// ListIssues implements reconciliation.ReconciliationService.
func (s *ReconciliationServiceImpl) ListIssues(ctx context.Context, req reconciliation.ListIssuesRequest) (reconciliation.IssueListResponse, error) {
	if err := req.Validate(); err != nil {
		return reconciliation.IssueListResponse{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return reconciliation.IssueListResponse{}, err
	}

	nowLocal := s.now().UTC().In(sess.Location())
	today := nowLocal.Format("2006-01-02")

	monthKey := req.Month
	if monthKey == "" {
		monthKey = nowLocal.Format("2006-01")
	}
	month, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return reconciliation.IssueListResponse{}, fmt.Errorf("invalid month %q: %w", monthKey, err)
	}

	issues, err := s.deriveMonth(ctx, sess.EmployeeID, month.Year(), month.Month(), today)
	if err != nil {
		return reconciliation.IssueListResponse{}, err
	}

	return reconciliation.IssueListResponse{
		Month:    monthKey,
		Issues:   issues,
		Blocking: reconciliation.FilterBlocking(issues, today),
	}, nil
}

// BlockingIssues implements reconciliation.ReconciliationService.
// It scans the current and previous month; anything older has either been
// force-closed by the end-of-day job or is a no-attendance day outside the
// reconciliation window.
func (s *ReconciliationServiceImpl) BlockingIssues(ctx context.Context, employeeID string, timezone string) ([]reconciliation.Issue, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	nowLocal := s.now().UTC().In(loc)
	today := nowLocal.Format("2006-01-02")

	// Anchor on the first of the month: subtracting a month from a day-of-month
	// the previous month lacks (Mar 31, May 31, ...) normalizes forward into
	// the current month and would skip the previous one entirely.
	firstOfMonth := time.Date(nowLocal.Year(), nowLocal.Month(), 1, 0, 0, 0, 0, loc)
	prev := firstOfMonth.AddDate(0, -1, 0)
	var blocking []reconciliation.Issue

	for _, m := range []time.Time{prev, firstOfMonth} {
		issues, err := s.deriveMonth(ctx, employeeID, m.Year(), m.Month(), today)
		if err != nil {
			return nil, err
		}
		blocking = append(blocking, reconciliation.FilterBlocking(issues, today)...)
	}

	return blocking, nil
}

// RequestManualEntry implements reconciliation.ReconciliationService.
func (s *ReconciliationServiceImpl) RequestManualEntry(ctx context.Context, req reconciliation.ManualRequestInput) (reconciliation.ManualRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return reconciliation.ManualRequestResponse{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return reconciliation.ManualRequestResponse{}, err
	}

	today := s.now().UTC().In(sess.Location()).Format("2006-01-02")
	if req.Date >= today {
		return reconciliation.ManualRequestResponse{}, reconciliation.ErrRequestFutureDay
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return reconciliation.ManualRequestResponse{}, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	pending, err := s.requestRepo.HasPendingForDay(ctx, sess.EmployeeID, date)
	if err != nil {
		return reconciliation.ManualRequestResponse{}, fmt.Errorf("failed to check pending request: %w", err)
	}
	if pending {
		return reconciliation.ManualRequestResponse{}, reconciliation.ErrRequestExists
	}

	created, err := s.requestRepo.Create(ctx, reconciliation.ManualRequest{
		EmployeeID: sess.EmployeeID,
		Date:       date,
		Message:    req.Message,
		Status:     reconciliation.RequestPending,
	})
	if err != nil {
		return reconciliation.ManualRequestResponse{}, fmt.Errorf("failed to create manual entry request: %w", err)
	}

	return reconciliation.MapRequestToResponse(created), nil
}

// ListPendingRequests implements reconciliation.ReconciliationService.
func (s *ReconciliationServiceImpl) ListPendingRequests(ctx context.Context) ([]reconciliation.ManualRequestResponse, error) {
	requests, err := s.requestRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	resp := make([]reconciliation.ManualRequestResponse, 0, len(requests))
	for _, r := range requests {
		resp = append(resp, reconciliation.MapRequestToResponse(r))
	}

	return resp, nil
}
