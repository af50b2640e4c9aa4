package reconciliation

import (
	"time"

	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// RECONCILIATION DTOs
// ========================================

type ListIssuesRequest struct {
	Month string // "YYYY-MM", defaults to the current month
}

func (r *ListIssuesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != "" {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type IssueListResponse struct {
	Month    string  `json:"month"`
	Issues   []Issue `json:"issues"`
	Blocking []Issue `json:"blocking"`
}

type ManualRequestInput struct {
	Date    string  `json:"date"` // "YYYY-MM-DD", strictly before today
	Message *string `json:"message,omitempty"`
}

func (r *ManualRequestInput) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ManualRequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Message      *string `json:"message,omitempty"`
	Status       string  `json:"status"`
	CompletedAt  *string `json:"completed_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// MapRequestToResponse converts a ManualRequest entity to its response shape.
func MapRequestToResponse(req ManualRequest) ManualRequestResponse {
	resp := ManualRequestResponse{
		ID:           req.ID,
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		Date:         req.Date.Format("2006-01-02"),
		Message:      req.Message,
		Status:       req.Status,
		CreatedAt:    req.CreatedAt.Format(time.RFC3339),
	}
	if req.CompletedAt != nil {
		at := req.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &at
	}
	return resp
}
