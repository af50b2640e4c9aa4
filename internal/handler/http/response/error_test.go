package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/domain/timelog"
	"github.com/chronohr/attendance-backend-go/internal/pkg/session"
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, err error) (int, Response) {
	t.Helper()

	rec := httptest.NewRecorder()
	HandleError(rec, err)

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body
}

func TestHandleErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"no session", session.ErrNoSession, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"blocked by issues", attendance.ErrBlockedByIssues, http.StatusConflict, "CONFLICT"},
		{"already punched in", attendance.ErrAlreadyPunchedIn, http.StatusConflict, "CONFLICT"},
		{"not punched in", attendance.ErrNotPunchedIn, http.StatusConflict, "CONFLICT"},
		{"backfill future day", attendance.ErrBackfillFutureDay, http.StatusBadRequest, "BAD_REQUEST"},
		{"entry not found", timelog.ErrEntryNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"not entry owner", timelog.ErrNotEntryOwner, http.StatusForbidden, "FORBIDDEN"},
		{"leave overlap", leave.ErrOverlapsExisting, http.StatusConflict, "CONFLICT"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := handle(t, tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.wantCode, body.Error.Code)
		})
	}
}

func TestHandleErrorRecognizesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("punch-in rejected: %w", attendance.ErrBlockedByIssues)

	status, body := handle(t, wrapped)
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "CONFLICT", body.Error.Code)
}

func TestHandleErrorValidation(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "date", Message: "date must be in YYYY-MM-DD format"},
	}

	status, body := handle(t, errs)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "date must be in YYYY-MM-DD format", body.Error.Details["date"])
}

func TestHandleErrorBudgetOverrun(t *testing.T) {
	err := timelog.BudgetExceededError{RequestedMinutes: 300, RemainingMinutes: 240}

	status, body := handle(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)
	assert.Contains(t, body.Error.Message, "60 minutes")
}

func TestConflictWithDataCarriesPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	ConflictWithData(rec, "blocked", map[string]interface{}{
		"blocking_issues": []string{"2026-08-27"},
	})

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Data)

	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data, "blocking_issues")
}
