package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/reconciliation"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type manualRequestRepository struct {
	db *database.DB
}

func NewManualRequestRepository(db *database.DB) reconciliation.ManualRequestRepository {
	return &manualRequestRepository{db: db}
}

// Create implements reconciliation.ManualRequestRepository.
func (r *manualRequestRepository) Create(ctx context.Context, req reconciliation.ManualRequest) (reconciliation.ManualRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO manual_entry_requests (employee_id, date, message, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID,
		req.Date,
		req.Message,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return reconciliation.ManualRequest{}, fmt.Errorf("failed to create manual entry request: %w", err)
	}

	return req, nil
}

// GetByID implements reconciliation.ManualRequestRepository.
func (r *manualRequestRepository) GetByID(ctx context.Context, id string) (reconciliation.ManualRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT mr.id, mr.employee_id, mr.date, mr.message, mr.status,
			   mr.completed_by, mr.completed_at, mr.created_at, mr.updated_at,
			   u.full_name AS employee_name
		FROM manual_entry_requests mr
		LEFT JOIN users u ON u.id = mr.employee_id
		WHERE mr.id = $1
	`

	var req reconciliation.ManualRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.Message, &req.Status,
		&req.CompletedBy, &req.CompletedAt, &req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return reconciliation.ManualRequest{}, fmt.Errorf("manual entry request not found: %w", err)
		}
		return reconciliation.ManualRequest{}, fmt.Errorf("failed to get manual entry request: %w", err)
	}

	return req, nil
}

// HasPendingForDay implements reconciliation.ManualRequestRepository.
func (r *manualRequestRepository) HasPendingForDay(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM manual_entry_requests
			WHERE employee_id = $1 AND date = $2 AND status = 'pending'
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending manual entry request: %w", err)
	}

	return exists, nil
}

// PendingDatesInRange implements reconciliation.ManualRequestRepository.
func (r *manualRequestRepository) PendingDatesInRange(ctx context.Context, employeeID string, from, to time.Time) (map[string]bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date
		FROM manual_entry_requests
		WHERE employee_id = $1 AND status = 'pending' AND date BETWEEN $2 AND $3
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending request dates: %w", err)
	}
	defer rows.Close()

	dates := make(map[string]bool)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan pending request date: %w", err)
		}
		dates[d.Format("2006-01-02")] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending request dates: %w", err)
	}

	return dates, nil
}

// ListPending implements reconciliation.ManualRequestRepository.
func (r *manualRequestRepository) ListPending(ctx context.Context) ([]reconciliation.ManualRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT mr.id, mr.employee_id, mr.date, mr.message, mr.status,
			   mr.completed_by, mr.completed_at, mr.created_at, mr.updated_at,
			   u.full_name AS employee_name
		FROM manual_entry_requests mr
		LEFT JOIN users u ON u.id = mr.employee_id
		WHERE mr.status = 'pending'
		ORDER BY mr.date ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending manual entry requests: %w", err)
	}
	defer rows.Close()

	var requests []reconciliation.ManualRequest
	for rows.Next() {
		var req reconciliation.ManualRequest
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.Date, &req.Message, &req.Status,
			&req.CompletedBy, &req.CompletedAt, &req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manual entry request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate manual entry requests: %w", err)
	}

	return requests, nil
}

// Complete implements reconciliation.ManualRequestRepository.
func (r *manualRequestRepository) Complete(ctx context.Context, id string, completedBy string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE manual_entry_requests
		SET status = 'completed', completed_by = $2, completed_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id, completedBy, at)
	if err != nil {
		return fmt.Errorf("failed to complete manual entry request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("manual entry request not pending: %w", pgx.ErrNoRows)
	}

	return nil
}
