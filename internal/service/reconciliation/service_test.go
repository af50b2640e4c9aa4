package reconciliation

import (
	"context"
	"testing"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/domain/reconciliation"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionRepo struct {
	sessions []attendance.Session
	ranges   [][2]time.Time
}

func (f *fakeSessionRepo) Create(ctx context.Context, sess attendance.Session) (attendance.Session, error) {
	return sess, nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	return attendance.Session{}, pgx.ErrNoRows
}

func (f *fakeSessionRepo) GetOpenSession(ctx context.Context, employeeID string) (attendance.Session, error) {
	return attendance.Session{}, pgx.ErrNoRows
}

func (f *fakeSessionRepo) ListByDay(ctx context.Context, employeeID string, date time.Time) ([]attendance.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) ListByDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Session, error) {
	f.ranges = append(f.ranges, [2]time.Time{from, to})
	var out []attendance.Session
	for _, s := range f.sessions {
		if !s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListMine(ctx context.Context, employeeID string, filter attendance.MySessionsFilter) ([]attendance.Session, int64, error) {
	return nil, 0, nil
}

func (f *fakeSessionRepo) Close(ctx context.Context, id string, punchOut time.Time, status string) error {
	return nil
}

func (f *fakeSessionRepo) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.Session, error) {
	return nil, nil
}

type fakeLeaveRepo struct {
	approved map[string]bool
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Request, error) {
	return leave.Request{}, pgx.ErrNoRows
}

func (f *fakeLeaveRepo) ListMine(ctx context.Context, employeeID string, filter leave.MyLeavesFilter) ([]leave.Request, int64, error) {
	return nil, 0, nil
}

func (f *fakeLeaveRepo) ListPending(ctx context.Context) ([]leave.Request, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	return false, nil
}

func (f *fakeLeaveRepo) ApprovedDatesInRange(ctx context.Context, employeeID string, from, to time.Time) (map[string]bool, error) {
	if f.approved == nil {
		return map[string]bool{}, nil
	}
	return f.approved, nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, id string, status string, decidedBy string, note *string) error {
	return nil
}

type fakeRequestRepo struct {
	pending map[string]bool
}

func (f *fakeRequestRepo) Create(ctx context.Context, req reconciliation.ManualRequest) (reconciliation.ManualRequest, error) {
	return req, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (reconciliation.ManualRequest, error) {
	return reconciliation.ManualRequest{}, pgx.ErrNoRows
}

func (f *fakeRequestRepo) HasPendingForDay(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return f.pending[date.Format("2006-01-02")], nil
}

func (f *fakeRequestRepo) PendingDatesInRange(ctx context.Context, employeeID string, from, to time.Time) (map[string]bool, error) {
	if f.pending == nil {
		return map[string]bool{}, nil
	}
	return f.pending, nil
}

func (f *fakeRequestRepo) ListPending(ctx context.Context) ([]reconciliation.ManualRequest, error) {
	return nil, nil
}

func (f *fakeRequestRepo) Complete(ctx context.Context, id string, completedBy string, at time.Time) error {
	return nil
}

func newService(sessionRepo *fakeSessionRepo, now time.Time) *ReconciliationServiceImpl {
	return &ReconciliationServiceImpl{
		sessionRepo: sessionRepo,
		leaveRepo:   &fakeLeaveRepo{},
		requestRepo: &fakeRequestRepo{},
		now:         func() time.Time { return now },
	}
}

func mustDate(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", key)
	require.NoError(t, err)
	return d
}

func TestBlockingIssuesCoversThePreviousMonth(t *testing.T) {
	// An open session left over from February must still block at the end of
	// March, including on day-of-month values February does not have.
	sessionRepo := &fakeSessionRepo{sessions: []attendance.Session{
		{
			ID:         "sess-1",
			EmployeeID: "emp-1",
			Date:       mustDate(t, "2026-02-27"),
			PunchIn:    mustDate(t, "2026-02-27").Add(9 * time.Hour),
			Status:     attendance.StatusOpen,
		},
	}}

	for _, today := range []string{"2026-03-29", "2026-03-30", "2026-03-31"} {
		now := mustDate(t, today).Add(12 * time.Hour)
		svc := newService(sessionRepo, now)

		blocking, err := svc.BlockingIssues(context.Background(), "emp-1", "UTC")
		require.NoError(t, err)

		found := false
		for _, issue := range blocking {
			if issue.Date == "2026-02-27" {
				found = true
				assert.Equal(t, reconciliation.IssueMissingPunchOut, issue.Type)
			}
		}
		assert.True(t, found, "open session from 2026-02-27 must block on %s", today)
	}
}

func TestBlockingIssuesDerivesTwoDistinctMonths(t *testing.T) {
	sessionRepo := &fakeSessionRepo{}
	now := mustDate(t, "2026-05-31").Add(12 * time.Hour)
	svc := newService(sessionRepo, now)

	_, err := svc.BlockingIssues(context.Background(), "emp-1", "UTC")
	require.NoError(t, err)

	require.Len(t, sessionRepo.ranges, 2)
	assert.Equal(t, "2026-04-01", sessionRepo.ranges[0][0].Format("2006-01-02"))
	assert.Equal(t, "2026-04-30", sessionRepo.ranges[0][1].Format("2006-01-02"))
	assert.Equal(t, "2026-05-01", sessionRepo.ranges[1][0].Format("2006-01-02"))
	assert.Equal(t, "2026-05-31", sessionRepo.ranges[1][1].Format("2006-01-02"))
}

func TestBlockingIssuesExcludesToday(t *testing.T) {
	// Today's own open session never blocks; a weekday with no attendance
	// strictly before today does.
	sessionRepo := &fakeSessionRepo{sessions: []attendance.Session{
		{
			ID:         "sess-1",
			EmployeeID: "emp-1",
			Date:       mustDate(t, "2026-08-28"),
			PunchIn:    mustDate(t, "2026-08-28").Add(9 * time.Hour),
			Status:     attendance.StatusOpen,
		},
	}}
	now := mustDate(t, "2026-08-28").Add(12 * time.Hour)
	svc := newService(sessionRepo, now)

	blocking, err := svc.BlockingIssues(context.Background(), "emp-1", "UTC")
	require.NoError(t, err)

	for _, issue := range blocking {
		assert.Less(t, issue.Date, "2026-08-28")
	}
}
