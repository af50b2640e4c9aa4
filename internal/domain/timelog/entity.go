package timelog

import "time"

// Task is something loggable: a project task or a recurring meeting.
type Task struct {
	ID        string
	Name      string
	Project   *string
	IsMeeting bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Entry is one logged block of task time attributed to a work day.
type Entry struct {
	ID         string
	EmployeeID string
	TaskID     string
	Date       time.Time // calendar day the time is attributed to
	Minutes    int
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	TaskName *string
}
