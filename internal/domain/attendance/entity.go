package attendance

import (
	"time"
)

// Session statuses. A session is open while punched in; how it was closed is
// kept so reconciliation can tell a normal punch-out from a forced one.
const (
	StatusOpen       = "open"
	StatusClosed     = "closed"
	StatusAutoClosed = "auto_closed" // forced shut by the end-of-day job
	StatusBackfilled = "backfilled"  // punch-out supplied after the fact
	StatusManual     = "manual"      // recorded by an admin on request
)

// Session is a single punch-in/punch-out pair on one work day.
// An employee may have several sessions per day but at most one open one.
type Session struct {
	ID            string
	EmployeeID    string
	Date          time.Time // calendar day key in the employee's timezone
	PunchIn       time.Time // absolute, stored UTC
	PunchOut      *time.Time
	LocationLabel *string // human-readable geolocation captured at punch-in
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeName *string
}

// Open reports whether the session has no punch-out yet.
func (s Session) Open() bool {
	return s.PunchOut == nil
}

// DurationMs returns the closed session length in milliseconds, 0 while open.
func (s Session) DurationMs() int64 {
	if s.PunchOut == nil {
		return 0
	}
	return s.PunchOut.Sub(s.PunchIn).Milliseconds()
}

// Snapshot is the server-derived read model of one employee's day. It is
// replaced wholesale on every fetch; nothing in it is client-authoritative.
type Snapshot struct {
	Date          string     `json:"date"`
	FirstPunchIn  *time.Time `json:"first_punch_in,omitempty"`
	LastPunchIn   *time.Time `json:"last_punch_in,omitempty"`
	LastPunchOut  *time.Time `json:"last_punch_out,omitempty"`
	WorkedMs      int64      `json:"worked_ms"` // accumulated over closed sessions
	LocationLabel *string    `json:"location_label,omitempty"`
}

// Open reports whether the employee is currently punched in: the last punch-in
// exists and is not matched by a punch-out.
func (s Snapshot) Open() bool {
	if s.LastPunchIn == nil {
		return false
	}
	return s.LastPunchOut == nil || s.LastPunchOut.Before(*s.LastPunchIn)
}

// ElapsedMs derives the live elapsed work duration at the given instant:
// WorkedMs plus the running open-session time, or exactly WorkedMs when closed.
func (s Snapshot) ElapsedMs(now time.Time) int64 {
	if !s.Open() {
		return s.WorkedMs
	}
	running := now.Sub(*s.LastPunchIn).Milliseconds()
	if running < 0 {
		running = 0
	}
	return s.WorkedMs + running
}

// WorkedMinutes is the whole-minute worked total at the given instant.
func (s Snapshot) WorkedMinutes(now time.Time) int {
	return int(s.ElapsedMs(now) / 60000)
}

// BuildSnapshot folds one day's sessions into the read model. Sessions must
// all belong to the same day; order does not matter.
func BuildSnapshot(dateKey string, sessions []Session) Snapshot {
	snap := Snapshot{Date: dateKey}

	for _, sess := range sessions {
		in := sess.PunchIn
		if snap.FirstPunchIn == nil || in.Before(*snap.FirstPunchIn) {
			snap.FirstPunchIn = &in
		}
		if snap.LastPunchIn == nil || in.After(*snap.LastPunchIn) {
			t := in
			snap.LastPunchIn = &t
			snap.LocationLabel = sess.LocationLabel
			if sess.PunchOut != nil {
				out := *sess.PunchOut
				snap.LastPunchOut = &out
			} else {
				snap.LastPunchOut = nil
			}
		}
		snap.WorkedMs += sess.DurationMs()
	}

	return snap
}
