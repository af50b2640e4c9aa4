package timelog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBudget(t *testing.T) {
	cases := []struct {
		name          string
		worked        int
		logged        int
		wantCap       int
		wantRemaining int
	}{
		{"typical day", 500, 100, 440, 340},
		{"break exceeds worked time", 30, 0, 0, 0},
		{"exactly the break", 60, 0, 0, 0},
		{"nothing logged yet", 480, 0, 420, 420},
		{"logged beyond cap clamps to zero", 480, 500, 420, 0},
		{"zero worked", 0, 0, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := ComputeBudget(c.worked, c.logged)
			assert.Equal(t, c.wantCap, b.CapMinutes)
			assert.Equal(t, c.wantRemaining, b.RemainingMinutes)
			assert.Equal(t, c.worked, b.WorkedMinutes)
			assert.Equal(t, c.logged, b.LoggedMinutes)
		})
	}
}

func TestNormalizeEntries_DropsUnfilled(t *testing.T) {
	entries := []EntryInput{
		{TaskID: "a", Minutes: 30},
		{TaskID: "b", Minutes: 0},
		{TaskID: "c", Minutes: -15},
		{TaskID: "d", Hours: 1, Minutes: 5},
		{TaskID: "e", Hours: 0, Minutes: 0},
	}

	kept := NormalizeEntries(entries)

	require.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].TaskID)
	assert.Equal(t, "d", kept[1].TaskID)
	assert.Equal(t, 95, RequestedTotal(kept))
}

func TestEntryInput_TotalMinutes(t *testing.T) {
	assert.Equal(t, 90, EntryInput{Hours: 1, Minutes: 30}.TotalMinutes())
	assert.Equal(t, 45, EntryInput{Minutes: 45}.TotalMinutes())
	assert.Equal(t, 120, EntryInput{Hours: 2}.TotalMinutes())
}

func TestValidateBatch_RejectsWholeBatchOnOverage(t *testing.T) {
	budget := ComputeBudget(110, 0) // remaining = 50
	require.Equal(t, 50, budget.RemainingMinutes)

	entries := []EntryInput{
		{TaskID: "a", Minutes: 40},
		{TaskID: "b", Minutes: 30},
	}

	kept, total, err := ValidateBatch(entries, budget)

	require.Error(t, err)
	assert.Nil(t, kept, "no entries may survive a rejected batch")
	assert.Zero(t, total)

	var exceeded BudgetExceededError
	require.True(t, errors.As(err, &exceeded))
	assert.Equal(t, 20, exceeded.Overage())
	assert.Equal(t, 70, exceeded.RequestedMinutes)
	assert.Equal(t, 50, exceeded.RemainingMinutes)
	assert.Contains(t, err.Error(), "20 minutes")
}

func TestValidateBatch_AcceptsWithinBudget(t *testing.T) {
	budget := ComputeBudget(500, 100) // remaining = 340

	entries := []EntryInput{
		{TaskID: "a", Hours: 2},          // 120
		{TaskID: "b", Minutes: 0},        // dropped
		{TaskID: "c", Hours: 3, Minutes: 40}, // 220
	}

	kept, total, err := ValidateBatch(entries, budget)

	require.NoError(t, err)
	assert.Len(t, kept, 2)
	assert.Equal(t, 340, total)
}

func TestValidateBatch_DroppedEntriesDoNotCountTowardTotal(t *testing.T) {
	budget := ComputeBudget(120, 0) // remaining = 60

	entries := []EntryInput{
		{TaskID: "a", Minutes: 60},
		{TaskID: "b", Minutes: -500}, // would mask the overage if summed
	}

	kept, total, err := ValidateBatch(entries, budget)

	require.NoError(t, err)
	assert.Len(t, kept, 1)
	assert.Equal(t, 60, total)
}
