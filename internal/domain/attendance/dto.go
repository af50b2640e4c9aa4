package attendance

import (
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/timelog"
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type PunchInRequest struct {
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	LocationLabel *string  `json:"location_label,omitempty"`
}

func (r *PunchInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PunchOutRequest closes today's open session. Entries are optional task logs
// submitted with the punch-out; SkipLogging punches out with no validation and
// no entries regardless of what Entries contains.
type PunchOutRequest struct {
	Entries     []timelog.EntryInput `json:"entries,omitempty"`
	SkipLogging bool                 `json:"skip_logging,omitempty"`
}

// BackfillRequest retroactively closes an open session on a past day and
// optionally records task logs for that day in the same call.
type BackfillRequest struct {
	Date       string               `json:"date"`         // "YYYY-MM-DD", strictly before today
	PunchOutAt string               `json:"punch_out_at"` // RFC3339
	Entries    []timelog.EntryInput `json:"entries,omitempty"`
}

func (r *BackfillRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidDateTime(r.PunchOutAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_out_at",
			Message: "punch_out_at must be an ISO8601 timestamp",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ManualEntryRequest is the admin-side remediation for a day with no
// attendance: record the punch pair on behalf of the employee.
type ManualEntryRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`         // "YYYY-MM-DD", strictly before today
	PunchInAt  string  `json:"punch_in_at"`  // RFC3339
	PunchOutAt string  `json:"punch_out_at"` // RFC3339
	RequestID  *string `json:"request_id,omitempty"`
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidDateTime(r.PunchInAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_in_at",
			Message: "punch_in_at must be an ISO8601 timestamp",
		})
	}

	if _, ok := validator.IsValidDateTime(r.PunchOutAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_out_at",
			Message: "punch_out_at must be an ISO8601 timestamp",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MySessionsFilter struct {
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

func (f *MySessionsFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SessionResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	PunchIn       string  `json:"punch_in"`
	PunchOut      *string `json:"punch_out,omitempty"`
	LocationLabel *string `json:"location_label,omitempty"`
	Status        string  `json:"status"`
	Minutes       *int    `json:"minutes,omitempty"`
}

type SnapshotResponse struct {
	Snapshot  Snapshot `json:"snapshot"`
	Open      bool     `json:"open"`
	ElapsedMs int64    `json:"elapsed_ms"`
}

type DaySummaryResponse struct {
	Date          string            `json:"date"`
	WorkedMinutes int               `json:"worked_minutes"`
	Budget        timelog.Budget    `json:"budget"`
	Sessions      []SessionResponse `json:"sessions"`
}

type ListSessionsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Sessions   []SessionResponse `json:"sessions"`
}

// MapSessionToResponse converts a Session entity to its response shape.
func MapSessionToResponse(sess Session) SessionResponse {
	resp := SessionResponse{
		ID:            sess.ID,
		EmployeeID:    sess.EmployeeID,
		Date:          sess.Date.Format("2006-01-02"),
		PunchIn:       sess.PunchIn.Format(time.RFC3339),
		LocationLabel: sess.LocationLabel,
		Status:        sess.Status,
	}
	if sess.PunchOut != nil {
		out := sess.PunchOut.Format(time.RFC3339)
		resp.PunchOut = &out
		mins := int(sess.DurationMs() / 60000)
		resp.Minutes = &mins
	}
	return resp
}
