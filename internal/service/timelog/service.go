package timelog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/timelog"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/pkg/session"
	"github.com/chronohr/attendance-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type TimelogServiceImpl struct {
	db *database.DB
	timelog.EntryRepository
	timelog.TaskRepository
	sessionRepo attendance.SessionRepository
}

func NewTimelogService(
	db *database.DB,
	entryRepo timelog.EntryRepository,
	taskRepo timelog.TaskRepository,
	sessionRepo attendance.SessionRepository,
) timelog.TimelogService {
	return &TimelogServiceImpl{
		db:              db,
		EntryRepository: entryRepo,
		TaskRepository:  taskRepo,
		sessionRepo:     sessionRepo,
	}
}

// resolveDay turns an optional "YYYY-MM-DD" into the target day, defaulting
// to today in the employee's timezone.
func resolveDay(sess session.Session, key *string) (time.Time, string, error) {
	if key == nil {
		k := time.Now().UTC().In(sess.Location()).Format("2006-01-02")
		d, err := time.Parse("2006-01-02", k)
		return d, k, err
	}
	d, err := time.Parse("2006-01-02", *key)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid date %q: %w", *key, err)
	}
	return d, *key, nil
}

// budgetForDay recomputes the remaining-minutes budget from current state.
// excludeEntry, when set, removes that entry's minutes from the logged total
// so an update only validates the delta it introduces.
func (s *TimelogServiceImpl) budgetForDay(ctx context.Context, employeeID string, date time.Time, dateKey string, excludeEntry *timelog.Entry) (timelog.Budget, error) {
	sessions, err := s.sessionRepo.ListByDay(ctx, employeeID, date)
	if err != nil {
		return timelog.Budget{}, fmt.Errorf("failed to list day sessions: %w", err)
	}
	snap := attendance.BuildSnapshot(dateKey, sessions)

	logged, err := s.EntryRepository.SumMinutesByDay(ctx, employeeID, date)
	if err != nil {
		return timelog.Budget{}, fmt.Errorf("failed to sum logged minutes: %w", err)
	}
	if excludeEntry != nil {
		logged -= excludeEntry.Minutes
		if logged < 0 {
			logged = 0
		}
	}

	return timelog.ComputeBudget(snap.WorkedMinutes(time.Now().UTC()), logged), nil
}

// LogBatch implements timelog.TimelogService.
func (s *TimelogServiceImpl) LogBatch(ctx context.Context, req timelog.LogBatchRequest) (timelog.DayLogsResponse, error) {
	if err := req.Validate(); err != nil {
		return timelog.DayLogsResponse{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return timelog.DayLogsResponse{}, err
	}

	date, dateKey, err := resolveDay(sess, req.Date)
	if err != nil {
		return timelog.DayLogsResponse{}, err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		budget, err := s.budgetForDay(txCtx, sess.EmployeeID, date, dateKey, nil)
		if err != nil {
			return err
		}

		kept, _, err := timelog.ValidateBatch(req.Entries, budget)
		if err != nil {
			return err
		}
		if len(kept) == 0 {
			return nil
		}

		entries := make([]timelog.Entry, 0, len(kept))
		for _, input := range kept {
			task, err := s.TaskRepository.GetByID(txCtx, input.TaskID)
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
				EmployeeID: sess.EmployeeID,
				TaskID:     input.TaskID,
				Date:       date,
				Minutes:    input.TotalMinutes(),
				Note:       input.Note,
			})
		}

		if _, err := s.EntryRepository.CreateBatch(txCtx, entries); err != nil {
			return fmt.Errorf("failed to create time entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return timelog.DayLogsResponse{}, err
	}

	return s.dayLogs(ctx, sess, date, dateKey)
}

// DayLogs implements timelog.TimelogService.
func (s *TimelogServiceImpl) DayLogs(ctx context.Context, dateKey string) (timelog.DayLogsResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return timelog.DayLogsResponse{}, err
	}

	date, dateKey, err := resolveDay(sess, &dateKey)
	if err != nil {
		return timelog.DayLogsResponse{}, err
	}

	return s.dayLogs(ctx, sess, date, dateKey)
}

func (s *TimelogServiceImpl) dayLogs(ctx context.Context, sess session.Session, date time.Time, dateKey string) (timelog.DayLogsResponse, error) {
	budget, err := s.budgetForDay(ctx, sess.EmployeeID, date, dateKey, nil)
	if err != nil {
		return timelog.DayLogsResponse{}, err
	}

	entries, err := s.EntryRepository.ListByDay(ctx, sess.EmployeeID, date)
	if err != nil {
		return timelog.DayLogsResponse{}, fmt.Errorf("failed to list time entries: %w", err)
	}

	resp := timelog.DayLogsResponse{
		Date:    dateKey,
		Budget:  budget,
		Entries: make([]timelog.EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, timelog.MapEntryToResponse(e))
	}

	return resp, nil
}

// RemainingBudget implements timelog.TimelogService.
func (s *TimelogServiceImpl) RemainingBudget(ctx context.Context, dateKey string) (timelog.Budget, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return timelog.Budget{}, err
	}

	date, dateKey, err := resolveDay(sess, &dateKey)
	if err != nil {
		return timelog.Budget{}, err
	}

	return s.budgetForDay(ctx, sess.EmployeeID, date, dateKey, nil)
}

// UpdateEntry implements timelog.TimelogService.
func (s *TimelogServiceImpl) UpdateEntry(ctx context.Context, req timelog.UpdateEntryRequest) (timelog.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timelog.EntryResponse{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return timelog.EntryResponse{}, err
	}

	entry, err := s.EntryRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timelog.EntryResponse{}, timelog.ErrEntryNotFound
		}
		return timelog.EntryResponse{}, fmt.Errorf("failed to get time entry: %w", err)
	}
	if entry.EmployeeID != sess.EmployeeID {
		return timelog.EntryResponse{}, timelog.ErrNotEntryOwner
	}

	dateKey := entry.Date.Format("2006-01-02")

	// Exclude the entry's current minutes so only the change is validated.
	budget, err := s.budgetForDay(ctx, sess.EmployeeID, entry.Date, dateKey, &entry)
	if err != nil {
		return timelog.EntryResponse{}, err
	}

	minutes := req.TotalMinutes()
	if minutes > budget.RemainingMinutes {
		return timelog.EntryResponse{}, timelog.BudgetExceededError{
			RequestedMinutes: minutes,
			RemainingMinutes: budget.RemainingMinutes,
		}
	}

	note := entry.Note
	if req.Note != nil {
		note = req.Note
	}

	if err := s.EntryRepository.Update(ctx, entry.ID, minutes, note); err != nil {
		return timelog.EntryResponse{}, fmt.Errorf("failed to update time entry: %w", err)
	}

	entry.Minutes = minutes
	entry.Note = note
	return timelog.MapEntryToResponse(entry), nil
}

// DeleteEntry implements timelog.TimelogService.
func (s *TimelogServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return err
	}

	entry, err := s.EntryRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timelog.ErrEntryNotFound
		}
		return fmt.Errorf("failed to get time entry: %w", err)
	}
	if entry.EmployeeID != sess.EmployeeID {
		return timelog.ErrNotEntryOwner
	}

	if err := s.EntryRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}

	return nil
}

// ListTasks implements timelog.TimelogService.
func (s *TimelogServiceImpl) ListTasks(ctx context.Context) ([]timelog.TaskResponse, error) {
	tasks, err := s.TaskRepository.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	resp := make([]timelog.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, timelog.MapTaskToResponse(t))
	}

	return resp, nil
}
