package leave

import (
	"time"

	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// LEAVE DTOs
// ========================================

var validTypes = []string{TypeAnnual, TypeSick, TypeUnpaid}

type ApplyRequest struct {
	Type      string  `json:"type"`
	StartDate string  `json:"start_date"` // "YYYY-MM-DD"
	EndDate   string  `json:"end_date"`   // "YYYY-MM-DD"
	Reason    *string `json:"reason,omitempty"`
	// ForIssueDate marks a single-day application filed from the
	// reconciliation flow; it bypasses approval and must be a past day.
	ForIssueDate bool `json:"for_issue_date,omitempty"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: annual, sick, unpaid",
		})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.ForIssueDate && okStart && okEnd && !start.Equal(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "an issue-date application covers exactly one day",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	ID   string  `json:"-"`
	Note *string `json:"note,omitempty"`
}

type MyLeavesFilter struct {
	Status *string
	Page   int
	Limit  int
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Type         string  `json:"type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Reason       *string `json:"reason,omitempty"`
	Status       string  `json:"status"`
	AutoApproved bool    `json:"auto_approved"`
	DecidedAt    *string `json:"decided_at,omitempty"`
	Note         *string `json:"note,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type ListLeavesResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Leaves     []LeaveResponse `json:"leaves"`
}

// MapRequestToResponse converts a Request entity to its response shape.
func MapRequestToResponse(req Request) LeaveResponse {
	resp := LeaveResponse{
		ID:           req.ID,
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		Type:         req.Type,
		StartDate:    req.StartDate.Format("2006-01-02"),
		EndDate:      req.EndDate.Format("2006-01-02"),
		Days:         req.Days(),
		Reason:       req.Reason,
		Status:       req.Status,
		AutoApproved: req.AutoApproved,
		Note:         req.Note,
		CreatedAt:    req.CreatedAt.Format(time.RFC3339),
	}
	if req.DecidedAt != nil {
		at := req.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &at
	}
	return resp
}
