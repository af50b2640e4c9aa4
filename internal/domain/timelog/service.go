package timelog

import (
	"context"
)

// TimelogService defines business logic for task time logging under the
// remaining-minutes cap.
type TimelogService interface {
	// LogBatch validates the batch against the day's remaining budget and
	// inserts every kept entry, or none at all.
	LogBatch(ctx context.Context, req LogBatchRequest) (DayLogsResponse, error)

	// DayLogs retrieves the entries and current budget for one day.
	DayLogs(ctx context.Context, date string) (DayLogsResponse, error)

	// RemainingBudget derives the budget for one day without touching entries.
	RemainingBudget(ctx context.Context, date string) (Budget, error)

	// UpdateEntry re-validates only the delta being changed: the entry's old
	// minutes are excluded from the already-logged total first.
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (EntryResponse, error)

	DeleteEntry(ctx context.Context, id string) error

	ListTasks(ctx context.Context) ([]TaskResponse, error)
}
