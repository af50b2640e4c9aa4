package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/timelog"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type taskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) timelog.TaskRepository {
	return &taskRepository{db: db}
}

// List implements timelog.TaskRepository.
func (r *taskRepository) List(ctx context.Context, activeOnly bool) ([]timelog.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, project, is_meeting, is_active, created_at, updated_at
		FROM tasks
	`
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY is_meeting ASC, name ASC"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []timelog.Task
	for rows.Next() {
		var t timelog.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Project, &t.IsMeeting, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// GetByID implements timelog.TaskRepository.
func (r *taskRepository) GetByID(ctx context.Context, id string) (timelog.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, project, is_meeting, is_active, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var t timelog.Task
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Project, &t.IsMeeting, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timelog.Task{}, fmt.Errorf("task not found: %w", err)
		}
		return timelog.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

type entryRepository struct {
	db *database.DB
}

func NewEntryRepository(db *database.DB) timelog.EntryRepository {
	return &entryRepository{db: db}
}

// CreateBatch implements timelog.EntryRepository.
func (r *entryRepository) CreateBatch(ctx context.Context, entries []timelog.Entry) ([]timelog.Entry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (employee_id, task_id, date, minutes, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	created := make([]timelog.Entry, 0, len(entries))
	for _, entry := range entries {
		err := q.QueryRow(ctx, query,
			entry.EmployeeID,
			entry.TaskID,
			entry.Date,
			entry.Minutes,
			entry.Note,
		).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create time entry: %w", err)
		}
		created = append(created, entry)
	}

	return created, nil
}

// GetByID implements timelog.EntryRepository.
func (r *entryRepository) GetByID(ctx context.Context, id string) (timelog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.employee_id, e.task_id, e.date, e.minutes, e.note,
			   e.created_at, e.updated_at, t.name AS task_name
		FROM time_entries e
		LEFT JOIN tasks t ON t.id = e.task_id
		WHERE e.id = $1
	`

	var entry timelog.Entry
	err := q.QueryRow(ctx, query, id).Scan(
		&entry.ID, &entry.EmployeeID, &entry.TaskID, &entry.Date, &entry.Minutes, &entry.Note,
		&entry.CreatedAt, &entry.UpdatedAt, &entry.TaskName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timelog.Entry{}, fmt.Errorf("time entry not found: %w", err)
		}
		return timelog.Entry{}, fmt.Errorf("failed to get time entry: %w", err)
	}

	return entry, nil
}

// ListByDay implements timelog.EntryRepository.
func (r *entryRepository) ListByDay(ctx context.Context, employeeID string, date time.Time) ([]timelog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.employee_id, e.task_id, e.date, e.minutes, e.note,
			   e.created_at, e.updated_at, t.name AS task_name
		FROM time_entries e
		LEFT JOIN tasks t ON t.id = e.task_id
		WHERE e.employee_id = $1 AND e.date = $2
		ORDER BY e.created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []timelog.Entry
	for rows.Next() {
		var entry timelog.Entry
		err := rows.Scan(
			&entry.ID, &entry.EmployeeID, &entry.TaskID, &entry.Date, &entry.Minutes, &entry.Note,
			&entry.CreatedAt, &entry.UpdatedAt, &entry.TaskName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time entries: %w", err)
	}

	return entries, nil
}

// SumMinutesByDay implements timelog.EntryRepository.
func (r *entryRepository) SumMinutesByDay(ctx context.Context, employeeID string, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(minutes), 0)
		FROM time_entries
		WHERE employee_id = $1 AND date = $2
	`

	var total int
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum logged minutes: %w", err)
	}

	return total, nil
}

// Update implements timelog.EntryRepository.
func (r *entryRepository) Update(ctx context.Context, id string, minutes int, note *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET minutes = $2, note = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, minutes, note)
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("time entry not found: %w", pgx.ErrNoRows)
	}

	return nil
}

// Delete implements timelog.EntryRepository.
func (r *entryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("time entry not found: %w", pgx.ErrNoRows)
	}

	return nil
}
