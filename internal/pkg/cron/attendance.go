package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/user"
)

// AttendanceJobs force-closes sessions that were left open on earlier days.
// The forced close is what the reconciliation flow later surfaces as an
// auto_punch_out issue for the employee to confirm.
type AttendanceJobs struct {
	sessionRepo attendance.SessionRepository
	userRepo    user.UserRepository
	endOfDay    string // "HH:MM" local clock time used as the forced punch-out
}

func NewAttendanceJobs(
	sessionRepo attendance.SessionRepository,
	userRepo user.UserRepository,
	endOfDay string,
) *AttendanceJobs {
	return &AttendanceJobs{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		endOfDay:    endOfDay,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", 1*time.Hour, j.AutoCloseStaleSessions)
}

func (j *AttendanceJobs) AutoCloseStaleSessions(ctx context.Context) error {
	nowUTC := time.Now().UTC()

	// Everything still open, any day up to and including today; per-employee
	// timezones decide below which of those days already ended.
	stale, err := j.sessionRepo.ListOpenBefore(ctx, nowUTC.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("failed to list open sessions: %w", err)
	}

	if len(stale) == 0 {
		return nil
	}

	endOfDay, err := time.Parse("15:04", j.endOfDay)
	if err != nil {
		return fmt.Errorf("invalid end-of-day time %q: %w", j.endOfDay, err)
	}

	closedCount := 0
	for _, sess := range stale {
		emp, err := j.userRepo.GetByID(ctx, sess.EmployeeID)
		if err != nil {
			slog.Error("Cron: Failed to load employee for stale session",
				"session_id", sess.ID, "employee_id", sess.EmployeeID, "error", err)
			continue
		}

		loc, err := time.LoadLocation(emp.Timezone)
		if err != nil {
			loc = time.UTC
		}

		todayLocal := nowUTC.In(loc).Format("2006-01-02")
		if sess.Date.Format("2006-01-02") >= todayLocal {
			// The session's day has not ended in the employee's timezone yet.
			continue
		}

		forcedOut := time.Date(
			sess.Date.Year(), sess.Date.Month(), sess.Date.Day(),
			endOfDay.Hour(), endOfDay.Minute(), 0, 0,
			loc,
		).UTC()

		// A punch-in after the configured end of day closes at zero length.
		if forcedOut.Before(sess.PunchIn) {
			forcedOut = sess.PunchIn
		}

		if err := j.sessionRepo.Close(ctx, sess.ID, forcedOut, attendance.StatusAutoClosed); err != nil {
			slog.Error("Cron: Failed to auto-close session",
				"session_id", sess.ID, "employee_id", sess.EmployeeID, "error", err)
			continue
		}

		closedCount++
	}

	if closedCount > 0 {
		slog.Info("Cron: Auto-closed stale sessions", "count", closedCount)
	}
	return nil
}
