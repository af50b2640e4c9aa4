package reconciliation

import (
	"sort"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
)

// DeriveInput is everything needed to reconstruct one month's issues.
// Sessions must cover the requested month for the one employee; leave and
// request dates are "YYYY-MM-DD" keys.
type DeriveInput struct {
	Year  int
	Month time.Month
	// Today is the employee-local current day; only days strictly before it
	// are examined, so today's own open session is never reported.
	Today        string
	Sessions     []attendance.Session
	LeaveDates   map[string]bool // days covered by approved leave
	RequestDates map[string]bool // days with a pending manual-entry request
}

// DeriveIssues rebuilds the month's unresolved anomalies from stored state.
// Per day, in priority order: an open session is a missing punch-out; a
// force-closed session awaiting confirmation is an auto punch-out; a working
// day (Mon-Fri) with no sessions and no approved leave has no attendance.
func DeriveIssues(in DeriveInput) []Issue {
	type dayState struct {
		hasOpen    bool
		autoClosed *time.Time // latest auto punch-out on the day
	}
	days := make(map[string]*dayState)

	for _, sess := range in.Sessions {
		key := sess.Date.Format("2006-01-02")
		state := days[key]
		if state == nil {
			state = &dayState{}
			days[key] = state
		}
		if sess.Open() {
			state.hasOpen = true
		}
		if sess.Status == attendance.StatusAutoClosed && sess.PunchOut != nil {
			if state.autoClosed == nil || sess.PunchOut.After(*state.autoClosed) {
				out := *sess.PunchOut
				state.autoClosed = &out
			}
		}
	}

	first := time.Date(in.Year, in.Month, 1, 0, 0, 0, 0, time.UTC)
	var issues []Issue

	for day := first; day.Month() == in.Month; day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		if key >= in.Today {
			break
		}

		state := days[key]
		switch {
		case state != nil && state.hasOpen:
			issues = append(issues, Issue{Date: key, Type: IssueMissingPunchOut})
		case state != nil && state.autoClosed != nil:
			issues = append(issues, Issue{
				Date:           key,
				Type:           IssueAutoPunchOut,
				AutoPunchOutAt: state.autoClosed,
			})
		case state == nil:
			if isWorkingDay(day) && !in.LeaveDates[key] {
				issues = append(issues, Issue{
					Date:              key,
					Type:              IssueNoAttendance,
					HasPendingRequest: in.RequestDates[key],
				})
			}
		}
	}

	sort.Slice(issues, func(i, j int) bool { return issues[i].Date < issues[j].Date })
	return issues
}

func isWorkingDay(day time.Time) bool {
	wd := day.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
