package response

import (
	"errors"
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/auth"
	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/domain/reconciliation"
	"github.com/chronohr/attendance-backend-go/internal/domain/timelog"
	"github.com/chronohr/attendance-backend-go/internal/domain/user"
	"github.com/chronohr/attendance-backend-go/internal/pkg/session"
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A budget overrun names its overage in the message
	var budgetErr timelog.BudgetExceededError
	if errors.As(err, &budgetErr) {
		BadRequest(w, budgetErr.Error(), nil)
		return
	}

	switch {
	// Session / auth errors
	case errors.Is(err, session.ErrNoSession):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Attendance errors
	case errors.Is(err, attendance.ErrBlockedByIssues):
		Conflict(w, "Unresolved attendance issues on earlier days block punching in")
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, "You are already punched in")
	case errors.Is(err, attendance.ErrNotPunchedIn):
		Conflict(w, "You are not punched in")
	case errors.Is(err, attendance.ErrBackfillFutureDay):
		BadRequest(w, "Only days before today can be backfilled", nil)
	case errors.Is(err, attendance.ErrNoOpenSessionForDay):
		NotFound(w, "No open session found for that day")
	case errors.Is(err, attendance.ErrPunchOutBeforeIn):
		BadRequest(w, "Punch-out time must be after the punch-in time", nil)
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Attendance session not found")
	case errors.Is(err, attendance.ErrDayHasSessions):
		Conflict(w, "Attendance already recorded for that day")
	case errors.Is(err, attendance.ErrNotAllowedToRecord):
		Forbidden(w, "Only admins can record manual entries")

	// Time log errors
	case errors.Is(err, timelog.ErrEntryNotFound):
		NotFound(w, "Time log entry not found")
	case errors.Is(err, timelog.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, timelog.ErrTaskInactive):
		BadRequest(w, "Task is no longer active", nil)
	case errors.Is(err, timelog.ErrNotEntryOwner):
		Forbidden(w, "Time log entry belongs to another employee")

	// Reconciliation errors
	case errors.Is(err, reconciliation.ErrRequestNotFound):
		NotFound(w, "Manual entry request not found")
	case errors.Is(err, reconciliation.ErrRequestAlreadyCompleted):
		Conflict(w, "Manual entry request already completed")
	case errors.Is(err, reconciliation.ErrRequestExists):
		Conflict(w, "A manual entry request for that day is already pending")
	case errors.Is(err, reconciliation.ErrRequestFutureDay):
		BadRequest(w, "Only days before today can be requested", nil)

	// Leave errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlapsExisting):
		Conflict(w, "Leave request overlaps an existing one")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrNotAllowedToApprove):
		Forbidden(w, "Not allowed to approve or reject leave requests")
	case errors.Is(err, leave.ErrIssueDateNotInPast):
		BadRequest(w, "Leave for an attendance issue must target a day before today", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
