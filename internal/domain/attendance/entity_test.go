package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return v
}

func tsPtr(t *testing.T, s string) *time.Time {
	v := ts(t, s)
	return &v
}

func TestSnapshot_Open(t *testing.T) {
	assert.False(t, Snapshot{}.Open(), "no punch-in means closed")

	open := Snapshot{LastPunchIn: tsPtr(t, "2025-06-10T09:00:00Z")}
	assert.True(t, open.Open())

	closed := Snapshot{
		LastPunchIn:  tsPtr(t, "2025-06-10T09:00:00Z"),
		LastPunchOut: tsPtr(t, "2025-06-10T17:00:00Z"),
	}
	assert.False(t, closed.Open())

	// Punched back in after a punch-out earlier in the day.
	reopened := Snapshot{
		LastPunchIn:  tsPtr(t, "2025-06-10T13:00:00Z"),
		LastPunchOut: tsPtr(t, "2025-06-10T12:00:00Z"),
	}
	assert.True(t, reopened.Open())
}

func TestSnapshot_ElapsedMs(t *testing.T) {
	now := ts(t, "2025-06-10T10:30:00Z")

	open := Snapshot{
		LastPunchIn: tsPtr(t, "2025-06-10T10:00:00Z"),
		WorkedMs:    3_600_000,
	}
	assert.Equal(t, int64(3_600_000+30*60*1000), open.ElapsedMs(now))

	// Strictly increasing over time while open.
	later := open.ElapsedMs(now.Add(time.Second))
	assert.Greater(t, later, open.ElapsedMs(now))

	closed := Snapshot{
		LastPunchIn:  tsPtr(t, "2025-06-10T09:00:00Z"),
		LastPunchOut: tsPtr(t, "2025-06-10T10:00:00Z"),
		WorkedMs:     3_600_000,
	}
	assert.Equal(t, int64(3_600_000), closed.ElapsedMs(now))
	assert.Equal(t, closed.ElapsedMs(now), closed.ElapsedMs(now.Add(time.Hour)), "frozen while closed")

	// Clock skew: a punch-in slightly ahead of now never goes negative.
	skewed := Snapshot{
		LastPunchIn: tsPtr(t, "2025-06-10T10:30:05Z"),
		WorkedMs:    1000,
	}
	assert.Equal(t, int64(1000), skewed.ElapsedMs(now))
}

func TestBuildSnapshot(t *testing.T) {
	sessions := []Session{
		{
			PunchIn:  ts(t, "2025-06-10T09:00:00Z"),
			PunchOut: tsPtr(t, "2025-06-10T12:00:00Z"),
			Status:   StatusClosed,
		},
		{
			PunchIn:       ts(t, "2025-06-10T13:00:00Z"),
			LocationLabel: func() *string { s := "Office, 3rd floor"; return &s }(),
			Status:        StatusOpen,
		},
	}

	snap := BuildSnapshot("2025-06-10", sessions)

	assert.Equal(t, "2025-06-10", snap.Date)
	require.NotNil(t, snap.FirstPunchIn)
	assert.Equal(t, ts(t, "2025-06-10T09:00:00Z"), *snap.FirstPunchIn)
	require.NotNil(t, snap.LastPunchIn)
	assert.Equal(t, ts(t, "2025-06-10T13:00:00Z"), *snap.LastPunchIn)
	assert.Nil(t, snap.LastPunchOut)
	assert.True(t, snap.Open())
	assert.Equal(t, int64(3*60*60*1000), snap.WorkedMs, "only closed sessions accumulate")
	require.NotNil(t, snap.LocationLabel)
	assert.Equal(t, "Office, 3rd floor", *snap.LocationLabel)
}

func TestBuildSnapshot_AllClosed(t *testing.T) {
	sessions := []Session{
		{
			PunchIn:  ts(t, "2025-06-10T09:00:00Z"),
			PunchOut: tsPtr(t, "2025-06-10T12:00:00Z"),
			Status:   StatusClosed,
		},
		{
			PunchIn:  ts(t, "2025-06-10T13:00:00Z"),
			PunchOut: tsPtr(t, "2025-06-10T17:30:00Z"),
			Status:   StatusClosed,
		},
	}

	snap := BuildSnapshot("2025-06-10", sessions)

	assert.False(t, snap.Open())
	assert.Equal(t, int64((3*60+270)*60*1000), snap.WorkedMs)
	now := ts(t, "2025-06-10T20:00:00Z")
	assert.Equal(t, snap.WorkedMs, snap.ElapsedMs(now))
}

func TestBuildSnapshot_Empty(t *testing.T) {
	snap := BuildSnapshot("2025-06-10", nil)
	assert.False(t, snap.Open())
	assert.Zero(t, snap.WorkedMs)
	assert.Zero(t, snap.ElapsedMs(ts(t, "2025-06-10T20:00:00Z")))
}
