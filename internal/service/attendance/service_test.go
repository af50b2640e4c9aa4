package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/reconciliation"
	"github.com/chronohr/attendance-backend-go/internal/domain/timelog"
	"github.com/chronohr/attendance-backend-go/internal/domain/user"
	"github.com/chronohr/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "emp-1"

func authedContext(t *testing.T, employeeID string) context.Context {
	t.Helper()

	jwtService := jwt.NewJWTService("test-secret-key", "1h", "24h")
	tokenString, _, err := jwtService.GenerateAccessToken(user.User{
		ID:       employeeID,
		Email:    employeeID + "@example.com",
		Role:     user.RoleEmployee,
		Timezone: "UTC",
	})
	require.NoError(t, err)

	token, err := jwtService.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeSessionRepo struct {
	open    *attendance.Session
	created []attendance.Session
}

func (f *fakeSessionRepo) Create(ctx context.Context, sess attendance.Session) (attendance.Session, error) {
	sess.ID = "sess-created"
	f.created = append(f.created, sess)
	return sess, nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	return attendance.Session{}, pgx.ErrNoRows
}

func (f *fakeSessionRepo) GetOpenSession(ctx context.Context, employeeID string) (attendance.Session, error) {
	if f.open != nil && f.open.EmployeeID == employeeID {
		return *f.open, nil
	}
	return attendance.Session{}, pgx.ErrNoRows
}

func (f *fakeSessionRepo) ListByDay(ctx context.Context, employeeID string, date time.Time) ([]attendance.Session, error) {
	var out []attendance.Session
	for _, s := range f.created {
		if s.EmployeeID == employeeID && s.Date.Equal(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Session, error) {
	return nil, nil
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

type fakeEntryRepo struct{}

func (f *fakeEntryRepo) CreateBatch(ctx context.Context, entries []timelog.Entry) ([]timelog.Entry, error) {
	return entries, nil
}

func (f *fakeEntryRepo) GetByID(ctx context.Context, id string) (timelog.Entry, error) {
	return timelog.Entry{}, pgx.ErrNoRows
}

func (f *fakeEntryRepo) ListByDay(ctx context.Context, employeeID string, date time.Time) ([]timelog.Entry, error) {
	return nil, nil
}

func (f *fakeEntryRepo) SumMinutesByDay(ctx context.Context, employeeID string, date time.Time) (int, error) {
	return 0, nil
}

func (f *fakeEntryRepo) Update(ctx context.Context, id string, minutes int, note *string) error {
	return nil
}

func (f *fakeEntryRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeTaskRepo struct{}

func (f *fakeTaskRepo) List(ctx context.Context, activeOnly bool) ([]timelog.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (timelog.Task, error) {
	return timelog.Task{}, pgx.ErrNoRows
}

type fakeUserRepo struct{}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	return newUser, nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return nil
}

func (f *fakeUserRepo) ListActive(ctx context.Context) ([]user.User, error) {
	return nil, nil
}

type fakeManualRequestRepo struct{}

func (f *fakeManualRequestRepo) Create(ctx context.Context, req reconciliation.ManualRequest) (reconciliation.ManualRequest, error) {
	return req, nil
}

func (f *fakeManualRequestRepo) GetByID(ctx context.Context, id string) (reconciliation.ManualRequest, error) {
	return reconciliation.ManualRequest{}, pgx.ErrNoRows
}

func (f *fakeManualRequestRepo) HasPendingForDay(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return false, nil
}

func (f *fakeManualRequestRepo) PendingDatesInRange(ctx context.Context, employeeID string, from, to time.Time) (map[string]bool, error) {
	return map[string]bool{}, nil
}

func (f *fakeManualRequestRepo) ListPending(ctx context.Context) ([]reconciliation.ManualRequest, error) {
	return nil, nil
}

func (f *fakeManualRequestRepo) Complete(ctx context.Context, id string, completedBy string, at time.Time) error {
	return nil
}

// fakeReconciliationService returns a fixed blocking set.
type fakeReconciliationService struct {
	blocking []reconciliation.Issue
}

func (f *fakeReconciliationService) ListIssues(ctx context.Context, req reconciliation.ListIssuesRequest) (reconciliation.IssueListResponse, error) {
	return reconciliation.IssueListResponse{}, nil
}

func (f *fakeReconciliationService) BlockingIssues(ctx context.Context, employeeID string, timezone string) ([]reconciliation.Issue, error) {
	return f.blocking, nil
}

func (f *fakeReconciliationService) RequestManualEntry(ctx context.Context, req reconciliation.ManualRequestInput) (reconciliation.ManualRequestResponse, error) {
	return reconciliation.ManualRequestResponse{}, nil
}

func (f *fakeReconciliationService) ListPendingRequests(ctx context.Context) ([]reconciliation.ManualRequestResponse, error) {
	return nil, nil
}

func newService(sessionRepo *fakeSessionRepo, recon *fakeReconciliationService) attendance.AttendanceService {
	return NewAttendanceService(
		nil,
		sessionRepo,
		&fakeEntryRepo{},
		&fakeTaskRepo{},
		&fakeUserRepo{},
		&fakeManualRequestRepo{},
		recon,
	)
}

func TestPunchInBlockedByEarlierIssues(t *testing.T) {
	sessionRepo := &fakeSessionRepo{}
	recon := &fakeReconciliationService{blocking: []reconciliation.Issue{
		{Date: "2026-08-27", Type: reconciliation.IssueMissingPunchOut},
	}}
	svc := newService(sessionRepo, recon)

	ctx := authedContext(t, testEmployeeID)

	_, err := svc.PunchIn(ctx, attendance.PunchInRequest{})
	assert.ErrorIs(t, err, attendance.ErrBlockedByIssues)
	assert.Empty(t, sessionRepo.created, "no session may be created while blocked")
}

func TestPunchInRejectsSecondOpenSession(t *testing.T) {
	open := attendance.Session{
		ID:         "sess-open",
		EmployeeID: testEmployeeID,
		Status:     attendance.StatusOpen,
		PunchIn:    time.Now().UTC().Add(-time.Hour),
	}
	sessionRepo := &fakeSessionRepo{open: &open}
	svc := newService(sessionRepo, &fakeReconciliationService{})

	ctx := authedContext(t, testEmployeeID)

	_, err := svc.PunchIn(ctx, attendance.PunchInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedIn)
}

func TestPunchInOpensSessionWithLocationLabel(t *testing.T) {
	sessionRepo := &fakeSessionRepo{}
	svc := newService(sessionRepo, &fakeReconciliationService{})

	ctx := authedContext(t, testEmployeeID)

	lat, long := 37.7749, -122.4194
	resp, err := svc.PunchIn(ctx, attendance.PunchInRequest{Latitude: &lat, Longitude: &long})
	require.NoError(t, err)

	require.Len(t, sessionRepo.created, 1)
	created := sessionRepo.created[0]
	assert.Equal(t, attendance.StatusOpen, created.Status)
	require.NotNil(t, created.LocationLabel)
	assert.Equal(t, "37.7749, -122.4194", *created.LocationLabel)

	assert.True(t, resp.Open)
	assert.GreaterOrEqual(t, resp.ElapsedMs, int64(0))
}
