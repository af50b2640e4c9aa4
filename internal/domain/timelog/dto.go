package timelog

import (
	"time"

	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// TIME LOG DTOs
// ========================================

// EntryInput is one draft log line. Minutes may be given directly or derived
// from an hours+minutes pair; both fields add up.
type EntryInput struct {
	TaskID  string  `json:"task_id"`
	Hours   int     `json:"hours,omitempty"`
	Minutes int     `json:"minutes,omitempty"`
	Note    *string `json:"note,omitempty"`
}

// TotalMinutes flattens the hours+minutes pair into minutes.
func (e EntryInput) TotalMinutes() int {
	return e.Hours*60 + e.Minutes
}

func (e EntryInput) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(e.TaskID) {
		errs = append(errs, validator.ValidationError{
			Field:   "task_id",
			Message: "task_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LogBatchRequest records several entries against one day in a single action.
// Date defaults to today when omitted.
type LogBatchRequest struct {
	Date    *string      `json:"date,omitempty"` // "YYYY-MM-DD"
	Entries []EntryInput `json:"entries"`
}

func (r *LogBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	for _, e := range r.Entries {
		if err := e.Validate(); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok {
				errs = append(errs, verrs...)
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEntryRequest struct {
	ID      string  `json:"-"`
	Hours   int     `json:"hours,omitempty"`
	Minutes int     `json:"minutes,omitempty"`
	Note    *string `json:"note,omitempty"`
}

// TotalMinutes flattens the hours+minutes pair into minutes.
func (r UpdateEntryRequest) TotalMinutes() int {
	return r.Hours*60 + r.Minutes
}

func (r *UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.TotalMinutes() <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "minutes",
			Message: "minutes must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryResponse struct {
	ID       string  `json:"id"`
	TaskID   string  `json:"task_id"`
	TaskName *string `json:"task_name,omitempty"`
	Date     string  `json:"date"`
	Minutes  int     `json:"minutes"`
	Note     *string `json:"note,omitempty"`
}

type DayLogsResponse struct {
	Date    string          `json:"date"`
	Budget  Budget          `json:"budget"`
	Entries []EntryResponse `json:"entries"`
}

type TaskResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Project   *string `json:"project,omitempty"`
	IsMeeting bool    `json:"is_meeting"`
}

// MapEntryToResponse converts an Entry entity to its response shape.
func MapEntryToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:       e.ID,
		TaskID:   e.TaskID,
		TaskName: e.TaskName,
		Date:     e.Date.Format("2006-01-02"),
		Minutes:  e.Minutes,
		Note:     e.Note,
	}
}

// MapTaskToResponse converts a Task entity to its response shape.
func MapTaskToResponse(t Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Name:      t.Name,
		Project:   t.Project,
		IsMeeting: t.IsMeeting,
	}
}

// DateKey formats a day for use as a calendar key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
