package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/reconciliation"
	"github.com/chronohr/attendance-backend-go/internal/domain/timelog"
	"github.com/chronohr/attendance-backend-go/internal/domain/user"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/pkg/session"
	"github.com/chronohr/attendance-backend-go/internal/pkg/utils"
	"github.com/chronohr/attendance-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.SessionRepository
	timelog.EntryRepository
	timelog.TaskRepository
	user.UserRepository
	manualRequestRepo     reconciliation.ManualRequestRepository
	reconciliationService reconciliation.ReconciliationService
}

func NewAttendanceService(
	db *database.DB,
	sessionRepo attendance.SessionRepository,
	entryRepo timelog.EntryRepository,
	taskRepo timelog.TaskRepository,
	userRepo user.UserRepository,
	manualRequestRepo reconciliation.ManualRequestRepository,
	reconciliationService reconciliation.ReconciliationService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                    db,
		SessionRepository:     sessionRepo,
		EntryRepository:       entryRepo,
		TaskRepository:        taskRepo,
		UserRepository:        userRepo,
		manualRequestRepo:     manualRequestRepo,
		reconciliationService: reconciliationService,
	}
}

// dayKeyToDate converts a "YYYY-MM-DD" key into the UTC midnight value the
// date column stores.
func dayKeyToDate(key string) (time.Time, error) {
	return time.Parse("2006-01-02", key)
}

// PunchIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchIn(ctx context.Context, req attendance.PunchInRequest) (attendance.SnapshotResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SnapshotResponse{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.SnapshotResponse{}, err
	}

	// Earlier-day anomalies must be cleared first; today's own state never
	// blocks.
	blocking, err := a.reconciliationService.BlockingIssues(ctx, sess.EmployeeID, sess.Timezone)
	if err != nil {
		return attendance.SnapshotResponse{}, fmt.Errorf("failed to check blocking issues: %w", err)
	}
	if len(blocking) > 0 {
		return attendance.SnapshotResponse{}, attendance.ErrBlockedByIssues
	}

	_, err = a.SessionRepository.GetOpenSession(ctx, sess.EmployeeID)
	if err == nil {
		return attendance.SnapshotResponse{}, attendance.ErrAlreadyPunchedIn
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.SnapshotResponse{}, fmt.Errorf("failed to check open session: %w", err)
	}

	nowUTC := time.Now().UTC()
	dateKey := nowUTC.In(sess.Location()).Format("2006-01-02")
	date, err := dayKeyToDate(dateKey)
	if err != nil {
		return attendance.SnapshotResponse{}, fmt.Errorf("failed to resolve local day: %w", err)
	}

	label := req.LocationLabel
	if label == nil && req.Latitude != nil && req.Longitude != nil {
		formatted := utils.FormatLatLong(*req.Latitude, *req.Longitude)
		label = &formatted
	}

	_, err = a.SessionRepository.Create(ctx, attendance.Session{
		EmployeeID:    sess.EmployeeID,
		Date:          date,
		PunchIn:       nowUTC,
		LocationLabel: label,
		Status:        attendance.StatusOpen,
	})
	if err != nil {
		return attendance.SnapshotResponse{}, fmt.Errorf("failed to punch in: %w", err)
	}

	return a.snapshotForDay(ctx, sess.EmployeeID, dateKey, nowUTC)
}

// PunchOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchOut(ctx context.Context, req attendance.PunchOutRequest) (attendance.SnapshotResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.SnapshotResponse{}, err
	}

	open, err := a.SessionRepository.GetOpenSession(ctx, sess.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.SnapshotResponse{}, attendance.ErrNotPunchedIn
		}
		return attendance.SnapshotResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}

	nowUTC := time.Now().UTC()
	dateKey := open.Date.Format("2006-01-02")

	entries := req.Entries
	if req.SkipLogging {
		entries = nil
	}

	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := a.SessionRepository.Close(txCtx, open.ID, nowUTC, attendance.StatusClosed); err != nil {
			return fmt.Errorf("failed to punch out: %w", err)
		}

		if len(entries) == 0 {
			return nil
		}
		return a.logEntriesForDay(txCtx, sess.EmployeeID, open.Date, dateKey, entries, nowUTC)
	})
	if err != nil {
		return attendance.SnapshotResponse{}, err
	}

	return a.snapshotForDay(ctx, sess.EmployeeID, dateKey, nowUTC)
}

// logEntriesForDay validates a submission batch against the day's remaining
// budget and inserts every kept entry. All-or-nothing: the caller runs it
// inside the same transaction as the punch-out or backfill.
func (a *AttendanceServiceImpl) logEntriesForDay(ctx context.Context, employeeID string, date time.Time, dateKey string, inputs []timelog.EntryInput, now time.Time) error {
	sessions, err := a.SessionRepository.ListByDay(ctx, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to list day sessions: %w", err)
	}
	snap := attendance.BuildSnapshot(dateKey, sessions)

	logged, err := a.EntryRepository.SumMinutesByDay(ctx, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to sum logged minutes: %w", err)
	}

	budget := timelog.ComputeBudget(snap.WorkedMinutes(now), logged)

	kept, _, err := timelog.ValidateBatch(inputs, budget)
	if err != nil {
		return err
	}
	if len(kept) == 0 {
		return nil
	}

	entries := make([]timelog.Entry, 0, len(kept))
	for _, input := range kept {
		task, err := a.TaskRepository.GetByID(ctx, input.TaskID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return timelog.ErrTaskNotFound
			}
			return fmt.Errorf("failed to get task: %w", err)
		}
		if !task.IsActive {
			return timelog.ErrTaskInactive
		}

		entries = append(entries, timelog.Entry{
			EmployeeID: employeeID,
			TaskID:     input.TaskID,
			Date:       date,
			Minutes:    input.TotalMinutes(),
			Note:       input.Note,
		})
	}

	if _, err := a.EntryRepository.CreateBatch(ctx, entries); err != nil {
		return fmt.Errorf("failed to create time entries: %w", err)
	}

	return nil
}

// TodaySnapshot implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TodaySnapshot(ctx context.Context) (attendance.SnapshotResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.SnapshotResponse{}, err
	}

	nowUTC := time.Now().UTC()
	dateKey := nowUTC.In(sess.Location()).Format("2006-01-02")

	return a.snapshotForDay(ctx, sess.EmployeeID, dateKey, nowUTC)
}

func (a *AttendanceServiceImpl) snapshotForDay(ctx context.Context, employeeID string, dateKey string, now time.Time) (attendance.SnapshotResponse, error) {
	date, err := dayKeyToDate(dateKey)
	if err != nil {
		return attendance.SnapshotResponse{}, fmt.Errorf("failed to parse day key: %w", err)
	}

	sessions, err := a.SessionRepository.ListByDay(ctx, employeeID, date)
	if err != nil {
		return attendance.SnapshotResponse{}, fmt.Errorf("failed to list day sessions: %w", err)
	}

	snap := attendance.BuildSnapshot(dateKey, sessions)
	return attendance.SnapshotResponse{
		Snapshot:  snap,
		Open:      snap.Open(),
		ElapsedMs: snap.ElapsedMs(now),
	}, nil
}

// DaySummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DaySummary(ctx context.Context, dateKey string) (attendance.DaySummaryResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.DaySummaryResponse{}, err
	}

	date, err := dayKeyToDate(dateKey)
	if err != nil {
		return attendance.DaySummaryResponse{}, fmt.Errorf("invalid date %q: %w", dateKey, err)
	}

	return a.daySummary(ctx, sess.EmployeeID, date, dateKey)
}

func (a *AttendanceServiceImpl) daySummary(ctx context.Context, employeeID string, date time.Time, dateKey string) (attendance.DaySummaryResponse, error) {
	nowUTC := time.Now().UTC()

	sessions, err := a.SessionRepository.ListByDay(ctx, employeeID, date)
	if err != nil {
		return attendance.DaySummaryResponse{}, fmt.Errorf("failed to list day sessions: %w", err)
	}
	snap := attendance.BuildSnapshot(dateKey, sessions)

	logged, err := a.EntryRepository.SumMinutesByDay(ctx, employeeID, date)
	if err != nil {
		return attendance.DaySummaryResponse{}, fmt.Errorf("failed to sum logged minutes: %w", err)
	}

	worked := snap.WorkedMinutes(nowUTC)
	resp := attendance.DaySummaryResponse{
		Date:          dateKey,
		WorkedMinutes: worked,
		Budget:        timelog.ComputeBudget(worked, logged),
		Sessions:      make([]attendance.SessionResponse, 0, len(sessions)),
	}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, attendance.MapSessionToResponse(s))
	}

	return resp, nil
}

// Backfill implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Backfill(ctx context.Context, req attendance.BackfillRequest) (attendance.DaySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DaySummaryResponse{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.DaySummaryResponse{}, err
	}

	nowUTC := time.Now().UTC()
	todayLocal := nowUTC.In(sess.Location()).Format("2006-01-02")
	if req.Date >= todayLocal {
		return attendance.DaySummaryResponse{}, attendance.ErrBackfillFutureDay
	}

	date, err := dayKeyToDate(req.Date)
	if err != nil {
		return attendance.DaySummaryResponse{}, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	sessions, err := a.SessionRepository.ListByDay(ctx, sess.EmployeeID, date)
	if err != nil {
		return attendance.DaySummaryResponse{}, fmt.Errorf("failed to list day sessions: %w", err)
	}

	var open *attendance.Session
	for i := range sessions {
		if sessions[i].Open() {
			open = &sessions[i]
			break
		}
	}
	if open == nil {
		return attendance.DaySummaryResponse{}, attendance.ErrNoOpenSessionForDay
	}

	punchOut, err := time.Parse(time.RFC3339, req.PunchOutAt)
	if err != nil {
		return attendance.DaySummaryResponse{}, fmt.Errorf("invalid punch_out_at: %w", err)
	}
	punchOut = punchOut.UTC()
	if !punchOut.After(open.PunchIn) {
		return attendance.DaySummaryResponse{}, attendance.ErrPunchOutBeforeIn
	}

	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := a.SessionRepository.Close(txCtx, open.ID, punchOut, attendance.StatusBackfilled); err != nil {
			return fmt.Errorf("failed to backfill punch-out: %w", err)
		}

		if len(req.Entries) == 0 {
			return nil
		}
		return a.logEntriesForDay(txCtx, sess.EmployeeID, date, req.Date, req.Entries, nowUTC)
	})
	if err != nil {
		return attendance.DaySummaryResponse{}, err
	}

	return a.daySummary(ctx, sess.EmployeeID, date, req.Date)
}

// ManualEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	caller, err := session.FromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	if !caller.IsAdmin() {
		return attendance.SessionResponse{}, attendance.ErrNotAllowedToRecord
	}

	employee, err := a.UserRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.SessionResponse{}, user.ErrUserNotFound
		}
		return attendance.SessionResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	loc, err := time.LoadLocation(employee.Timezone)
	if err != nil {
		loc = time.UTC
	}

	nowUTC := time.Now().UTC()
	todayLocal := nowUTC.In(loc).Format("2006-01-02")
	if req.Date >= todayLocal {
		return attendance.SessionResponse{}, attendance.ErrBackfillFutureDay
	}

	date, err := dayKeyToDate(req.Date)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	existing, err := a.SessionRepository.ListByDay(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to list day sessions: %w", err)
	}
	if len(existing) > 0 {
		return attendance.SessionResponse{}, attendance.ErrDayHasSessions
	}

	punchIn, err := time.Parse(time.RFC3339, req.PunchInAt)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("invalid punch_in_at: %w", err)
	}
	punchOut, err := time.Parse(time.RFC3339, req.PunchOutAt)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("invalid punch_out_at: %w", err)
	}
	punchIn, punchOut = punchIn.UTC(), punchOut.UTC()
	if !punchOut.After(punchIn) {
		return attendance.SessionResponse{}, attendance.ErrPunchOutBeforeIn
	}

	var created attendance.Session
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = a.SessionRepository.Create(txCtx, attendance.Session{
			EmployeeID: req.EmployeeID,
			Date:       date,
			PunchIn:    punchIn,
			PunchOut:   &punchOut,
			Status:     attendance.StatusManual,
		})
		if err != nil {
			return fmt.Errorf("failed to record manual entry: %w", err)
		}

		if req.RequestID == nil {
			return nil
		}

		mr, err := a.manualRequestRepo.GetByID(txCtx, *req.RequestID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return reconciliation.ErrRequestNotFound
			}
			return fmt.Errorf("failed to get manual entry request: %w", err)
		}
		if mr.EmployeeID != req.EmployeeID {
			return reconciliation.ErrRequestNotFound
		}
		if mr.Status != reconciliation.RequestPending {
			return reconciliation.ErrRequestAlreadyCompleted
		}

		if err := a.manualRequestRepo.Complete(txCtx, mr.ID, caller.UserID, nowUTC); err != nil {
			return fmt.Errorf("failed to complete manual entry request: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	return attendance.MapSessionToResponse(created), nil
}

// ListMySessions implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMySessions(ctx context.Context, filter attendance.MySessionsFilter) (attendance.ListSessionsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListSessionsResponse{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.ListSessionsResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	sessions, total, err := a.SessionRepository.ListMine(ctx, sess.EmployeeID, filter)
	if err != nil {
		return attendance.ListSessionsResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	resp := attendance.ListSessionsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Sessions:   make([]attendance.SessionResponse, 0, len(sessions)),
	}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, attendance.MapSessionToResponse(s))
	}

	return resp, nil
}
