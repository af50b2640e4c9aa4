package timelog

import "fmt"

// BreakMinutes is the fixed unpaid break deducted from every day's worked
// time before any task time may be attributed to it.
const BreakMinutes = 60

// Budget is the remaining-loggable-minutes derivation for one day. It is
// recomputed from current state on every use and never stored.
type Budget struct {
	WorkedMinutes    int `json:"worked_minutes"`
	CapMinutes       int `json:"cap_minutes"`
	LoggedMinutes    int `json:"logged_minutes"`
	RemainingMinutes int `json:"remaining_minutes"`
}

// ComputeBudget derives the day's budget:
//
//	cap       = max(0, worked - BreakMinutes)
//	remaining = max(0, cap - logged)
func ComputeBudget(workedMinutes, loggedMinutes int) Budget {
	capped := workedMinutes - BreakMinutes
	if capped < 0 {
		capped = 0
	}
	remaining := capped - loggedMinutes
	if remaining < 0 {
		remaining = 0
	}
	return Budget{
		WorkedMinutes:    workedMinutes,
		CapMinutes:       capped,
		LoggedMinutes:    loggedMinutes,
		RemainingMinutes: remaining,
	}
}

// BudgetExceededError rejects a whole submission batch whose requested total
// overruns the remaining budget. The overage is part of the message so the
// caller can show exactly how far over the user is.
type BudgetExceededError struct {
	RequestedMinutes int
	RemainingMinutes int
}

func (e BudgetExceededError) Error() string {
	return fmt.Sprintf(
		"requested %d minutes exceeds the remaining loggable time by %d minutes (remaining: %d)",
		e.RequestedMinutes, e.RequestedMinutes-e.RemainingMinutes, e.RemainingMinutes,
	)
}

// Overage is the number of minutes the request went over.
func (e BudgetExceededError) Overage() int {
	return e.RequestedMinutes - e.RemainingMinutes
}

// NormalizeEntries drops entries whose minutes are not positive; they count
// as "not filled in", not as zero-minute logs, and are excluded from both the
// requested total and the submission batch.
func NormalizeEntries(entries []EntryInput) []EntryInput {
	kept := make([]EntryInput, 0, len(entries))
	for _, e := range entries {
		if e.TotalMinutes() > 0 {
			kept = append(kept, e)
		}
	}
	return kept
}

// RequestedTotal sums the minutes of already-normalized entries.
func RequestedTotal(entries []EntryInput) int {
	total := 0
	for _, e := range entries {
		total += e.TotalMinutes()
	}
	return total
}

// ValidateBatch normalizes the batch and checks its total against the budget.
// All-or-nothing: on overrun no entry may be submitted. Returns the kept
// entries and their total.
func ValidateBatch(entries []EntryInput, budget Budget) ([]EntryInput, int, error) {
	kept := NormalizeEntries(entries)
	total := RequestedTotal(kept)
	if total > budget.RemainingMinutes {
		return nil, 0, BudgetExceededError{
			RequestedMinutes: total,
			RemainingMinutes: budget.RemainingMinutes,
		}
	}
	return kept, total, nil
}
