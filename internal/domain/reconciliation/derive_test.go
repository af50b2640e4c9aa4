package reconciliation

import (
	"testing"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", key)
	require.NoError(t, err)
	return d
}

func sessionAt(t *testing.T, dateKey, in string, out *string, status string) attendance.Session {
	t.Helper()
	sess := attendance.Session{
		Date:    day(t, dateKey),
		PunchIn: mustRFC3339(t, in),
		Status:  status,
	}
	if out != nil {
		o := mustRFC3339(t, *out)
		sess.PunchOut = &o
	}
	return sess
}

func mustRFC3339(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return v
}

func TestDeriveIssues_MissingPunchOut(t *testing.T) {
	issues := DeriveIssues(DeriveInput{
		Year:  2025,
		Month: time.June,
		Today: "2025-06-12",
		Sessions: []attendance.Session{
			sessionAt(t, "2025-06-10", "2025-06-10T09:00:00Z", nil, attendance.StatusOpen),
		},
		LeaveDates: map[string]bool{
			// every other working day covered so only the open day surfaces
			"2025-06-02": true, "2025-06-03": true, "2025-06-04": true,
			"2025-06-05": true, "2025-06-06": true, "2025-06-09": true,
			"2025-06-11": true,
		},
	})

	require.Len(t, issues, 1)
	assert.Equal(t, "2025-06-10", issues[0].Date)
	assert.Equal(t, IssueMissingPunchOut, issues[0].Type)
}

func TestDeriveIssues_AutoPunchOutCarriesTimestamp(t *testing.T) {
	out := "2025-06-10T18:00:00Z"
	issues := DeriveIssues(DeriveInput{
		Year:  2025,
		Month: time.June,
		Today: "2025-06-11",
		Sessions: []attendance.Session{
			sessionAt(t, "2025-06-10", "2025-06-10T09:00:00Z", &out, attendance.StatusAutoClosed),
		},
		LeaveDates: map[string]bool{
			"2025-06-02": true, "2025-06-03": true, "2025-06-04": true,
			"2025-06-05": true, "2025-06-06": true, "2025-06-09": true,
		},
	})

	require.Len(t, issues, 1)
	assert.Equal(t, IssueAutoPunchOut, issues[0].Type)
	require.NotNil(t, issues[0].AutoPunchOutAt)
	assert.Equal(t, mustRFC3339(t, out), *issues[0].AutoPunchOutAt)
}

func TestDeriveIssues_OpenSessionTakesPriorityOverAutoClosed(t *testing.T) {
	out := "2025-06-10T18:00:00Z"
	issues := DeriveIssues(DeriveInput{
		Year:  2025,
		Month: time.June,
		Today: "2025-06-11",
		Sessions: []attendance.Session{
			sessionAt(t, "2025-06-10", "2025-06-10T09:00:00Z", &out, attendance.StatusAutoClosed),
			sessionAt(t, "2025-06-10", "2025-06-10T19:00:00Z", nil, attendance.StatusOpen),
		},
		LeaveDates: map[string]bool{
			"2025-06-02": true, "2025-06-03": true, "2025-06-04": true,
			"2025-06-05": true, "2025-06-06": true, "2025-06-09": true,
		},
	})

	require.Len(t, issues, 1)
	assert.Equal(t, IssueMissingPunchOut, issues[0].Type)
}

func TestDeriveIssues_NoAttendanceSkipsWeekendsAndLeave(t *testing.T) {
	// 2025-06-07 and 2025-06-08 are Saturday and Sunday.
	issues := DeriveIssues(DeriveInput{
		Year:       2025,
		Month:      time.June,
		Today:      "2025-06-09",
		Sessions:   nil,
		LeaveDates: map[string]bool{"2025-06-03": true},
	})

	var dates []string
	for _, issue := range issues {
		assert.Equal(t, IssueNoAttendance, issue.Type)
		dates = append(dates, issue.Date)
	}
	assert.Equal(t, []string{"2025-06-02", "2025-06-04", "2025-06-05", "2025-06-06"}, dates)
}

func TestDeriveIssues_TodayAndFutureNeverReported(t *testing.T) {
	issues := DeriveIssues(DeriveInput{
		Year:  2025,
		Month: time.June,
		Today: "2025-06-02",
		Sessions: []attendance.Session{
			// today's own open session is normal, not an anomaly
			sessionAt(t, "2025-06-02", "2025-06-02T09:00:00Z", nil, attendance.StatusOpen),
		},
	})

	assert.Empty(t, issues)
}

func TestDeriveIssues_PendingRequestKeepsIssueOpen(t *testing.T) {
	issues := DeriveIssues(DeriveInput{
		Year:         2025,
		Month:        time.June,
		Today:        "2025-06-03",
		RequestDates: map[string]bool{"2025-06-02": true},
	})

	require.Len(t, issues, 1)
	assert.Equal(t, IssueNoAttendance, issues[0].Type)
	assert.True(t, issues[0].HasPendingRequest, "pending request is surfaced but does not resolve the issue")
}

func TestDeriveIssues_LeaveResolvesNoAttendance(t *testing.T) {
	before := DeriveIssues(DeriveInput{
		Year:  2025,
		Month: time.June,
		Today: "2025-06-03",
	})
	require.Len(t, before, 1)

	after := DeriveIssues(DeriveInput{
		Year:       2025,
		Month:      time.June,
		Today:      "2025-06-03",
		LeaveDates: map[string]bool{"2025-06-02": true},
	})
	assert.Empty(t, after)
}

func TestFilterBlocking_TodayNeverBlocks(t *testing.T) {
	issues := []Issue{
		{Date: "2025-06-10", Type: IssueMissingPunchOut},
		{Date: "2025-06-11", Type: IssueAutoPunchOut},
		{Date: "2025-06-12", Type: IssueMissingPunchOut}, // today
		{Date: "2025-06-13", Type: IssueNoAttendance},    // future
	}

	blocking := FilterBlocking(issues, "2025-06-12")

	require.Len(t, blocking, 2)
	assert.Equal(t, "2025-06-10", blocking[0].Date)
	assert.Equal(t, "2025-06-11", blocking[1].Date)
	for _, issue := range blocking {
		assert.True(t, issue.Blocking("2025-06-12"))
	}
}
