package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) attendance.SessionRepository {
	return &sessionRepository{db: db}
}

const sessionColumns = `
	id, employee_id, date, punch_in, punch_out,
	location_label, status, created_at, updated_at
`

func scanSession(row pgx.Row) (attendance.Session, error) {
	var sess attendance.Session
	err := row.Scan(
		&sess.ID, &sess.EmployeeID, &sess.Date, &sess.PunchIn, &sess.PunchOut,
		&sess.LocationLabel, &sess.Status, &sess.CreatedAt, &sess.UpdatedAt,
	)
	return sess, err
}

// Create implements attendance.SessionRepository.
func (r *sessionRepository) Create(ctx context.Context, sess attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_sessions (
			employee_id, date, punch_in, punch_out, location_label, status
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sess.EmployeeID,
		sess.Date,
		sess.PunchIn,
		sess.PunchOut,
		sess.LocationLabel,
		sess.Status,
	).Scan(&sess.ID, &sess.CreatedAt, &sess.UpdatedAt)

	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return sess, nil
}

// GetByID implements attendance.SessionRepository.
func (r *sessionRepository) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM attendance_sessions WHERE id = $1`

	sess, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Session{}, fmt.Errorf("session not found: %w", err)
		}
		return attendance.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	return sess, nil
}

// GetOpenSession implements attendance.SessionRepository.
func (r *sessionRepository) GetOpenSession(ctx context.Context, employeeID string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1
		  AND punch_out IS NULL
		ORDER BY punch_in DESC
		LIMIT 1
	`

	sess, err := scanSession(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Session{}, fmt.Errorf("no open session found: %w", err)
		}
		return attendance.Session{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return sess, nil
}

// ListByDay implements attendance.SessionRepository.
func (r *sessionRepository) ListByDay(ctx context.Context, employeeID string, date time.Time) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1 AND date = $2
		ORDER BY punch_in ASC
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions by day: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// ListByDateRange implements attendance.SessionRepository.
func (r *sessionRepository) ListByDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC, punch_in ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions by date range: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// ListMine implements attendance.SessionRepository.
func (r *sessionRepository) ListMine(ctx context.Context, employeeID string, filter attendance.MySessionsFilter) ([]attendance.Session, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE employee_id = $1"
	args := []interface{}{employeeID}
	argIdx := 2

	if filter.StartDate != nil {
		whereClause += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		whereClause += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_sessions " + whereClause

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+sessionColumns+`
		FROM attendance_sessions
		%s
		ORDER BY date DESC, punch_in DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions, err := collectSessions(rows)
	if err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

// Close implements attendance.SessionRepository.
func (r *sessionRepository) Close(ctx context.Context, id string, punchOut time.Time, status string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions
		SET punch_out = $2, status = $3, updated_at = NOW()
		WHERE id = $1 AND punch_out IS NULL
	`

	tag, err := q.Exec(ctx, query, id, punchOut, status)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session not open: %w", pgx.ErrNoRows)
	}

	return nil
}

// ListOpenBefore implements attendance.SessionRepository.
func (r *sessionRepository) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE punch_out IS NULL AND date < $1
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

func collectSessions(rows pgx.Rows) ([]attendance.Session, error) {
	var sessions []attendance.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}
