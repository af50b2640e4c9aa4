package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, type, start_date, end_date, reason,
			status, auto_approved, decided_by, decided_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID,
		req.Type,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.Status,
		req.AutoApproved,
		req.DecidedBy,
		req.DecidedAt,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.type, lr.start_date, lr.end_date, lr.reason,
			   lr.status, lr.auto_approved, lr.decided_by, lr.decided_at, lr.note,
			   lr.created_at, lr.updated_at, u.full_name AS employee_name
		FROM leave_requests lr
		LEFT JOIN users u ON u.id = lr.employee_id
		WHERE lr.id = $1
	`

	var req leave.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.Type, &req.StartDate, &req.EndDate, &req.Reason,
		&req.Status, &req.AutoApproved, &req.DecidedBy, &req.DecidedAt, &req.Note,
		&req.CreatedAt, &req.UpdatedAt, &req.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, fmt.Errorf("leave request not found: %w", err)
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// ListMine implements leave.LeaveRepository.
func (r *leaveRepository) ListMine(ctx context.Context, employeeID string, filter leave.MyLeavesFilter) ([]leave.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE lr.employee_id = $1"
	args := []interface{}{employeeID}
	argIdx := 2

	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM leave_requests lr " + whereClause

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT lr.id, lr.employee_id, lr.type, lr.start_date, lr.end_date, lr.reason,
			   lr.status, lr.auto_approved, lr.decided_by, lr.decided_at, lr.note,
			   lr.created_at, lr.updated_at, NULL AS employee_name
		FROM leave_requests lr
		%s
		ORDER BY lr.start_date DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests, err := collectLeaveRequests(rows)
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// ListPending implements leave.LeaveRepository.
func (r *leaveRepository) ListPending(ctx context.Context) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.type, lr.start_date, lr.end_date, lr.reason,
			   lr.status, lr.auto_approved, lr.decided_by, lr.decided_at, lr.note,
			   lr.created_at, lr.updated_at, u.full_name AS employee_name
		FROM leave_requests lr
		LEFT JOIN users u ON u.id = lr.employee_id
		WHERE lr.status = 'pending'
		ORDER BY lr.created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// HasOverlap implements leave.LeaveRepository.
func (r *leaveRepository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status != 'rejected'
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}

	return exists, nil
}

// ApprovedDatesInRange implements leave.LeaveRepository.
func (r *leaveRepository) ApprovedDatesInRange(ctx context.Context, employeeID string, from, to time.Time) (map[string]bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT GREATEST(start_date, $2::date), LEAST(end_date, $3::date)
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND start_date <= $3
		  AND end_date >= $2
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave dates: %w", err)
	}
	defer rows.Close()

	dates := make(map[string]bool)
	for rows.Next() {
		var start, end time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan leave range: %w", err)
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			dates[d.Format("2006-01-02")] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave ranges: %w", err)
	}

	return dates, nil
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveRepository) UpdateStatus(ctx context.Context, id string, status string, decidedBy string, note *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, decided_by = $3, decided_at = NOW(), note = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id, status, decidedBy, note)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("leave request not pending: %w", pgx.ErrNoRows)
	}

	return nil
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.Request, error) {
	var requests []leave.Request
	for rows.Next() {
		var req leave.Request
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.Type, &req.StartDate, &req.EndDate, &req.Reason,
			&req.Status, &req.AutoApproved, &req.DecidedBy, &req.DecidedAt, &req.Note,
			&req.CreatedAt, &req.UpdatedAt, &req.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}
	return requests, nil
}
