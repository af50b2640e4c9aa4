package sessionclock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock hands out a controllable now.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func openSnapshot(workedMs int64, punchIn time.Time) attendance.Snapshot {
	return attendance.Snapshot{
		Date:        punchIn.Format("2006-01-02"),
		LastPunchIn: &punchIn,
		WorkedMs:    workedMs,
	}
}

func closedSnapshot(workedMs int64, punchIn, punchOut time.Time) attendance.Snapshot {
	return attendance.Snapshot{
		Date:         punchIn.Format("2006-01-02"),
		LastPunchIn:  &punchIn,
		LastPunchOut: &punchOut,
		WorkedMs:     workedMs,
	}
}

func fixedFetch(snap attendance.Snapshot) FetchFunc {
	return func(context.Context) (attendance.Snapshot, error) {
		return snap, nil
	}
}

func TestTracker_ClosedSnapshotIsFrozen(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
	punchIn := clock.Now().Add(-4 * time.Hour)
	punchOut := clock.Now().Add(-time.Hour)

	tracker := New(fixedFetch(closedSnapshot(10_800_000, punchIn, punchOut)), Options{
		TickInterval: 5 * time.Millisecond,
		Now:          clock.Now,
	})
	tracker.Start(context.Background())
	defer tracker.Stop()

	assert.Equal(t, int64(10_800_000), tracker.Elapsed())

	// Even with time passing and ticks due, a closed snapshot never moves.
	clock.Advance(time.Hour)
	time.Sleep(30 * time.Millisecond)
	tracker.Wake()
	assert.Equal(t, int64(10_800_000), tracker.Elapsed())
}

func TestTracker_OpenSnapshotTicksMonotonically(t *testing.T) {
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start.Add(30 * time.Minute)}

	tracker := New(fixedFetch(openSnapshot(0, start)), Options{
		TickInterval: 5 * time.Millisecond,
		Now:          clock.Now,
	})
	tracker.Start(context.Background())
	defer tracker.Stop()

	first := tracker.Elapsed()
	assert.Equal(t, int64(30*60*1000), first, "computed immediately on snapshot load")

	prev := first
	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
		time.Sleep(20 * time.Millisecond)
		cur := tracker.Elapsed()
		assert.Greater(t, cur, prev, "elapsed must strictly increase while open")
		prev = cur
	}
}

func TestTracker_WakeRecomputesWithoutFetch(t *testing.T) {
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}

	fetches := 0
	fetch := func(context.Context) (attendance.Snapshot, error) {
		fetches++
		return openSnapshot(0, start), nil
	}

	// Interval timers effectively disabled; only Wake moves the value.
	tracker := New(fetch, Options{
		TickInterval:   time.Hour,
		ResyncInterval: time.Hour,
		Now:            clock.Now,
	})
	tracker.Start(context.Background())
	defer tracker.Stop()

	require.Equal(t, 1, fetches)
	assert.Equal(t, int64(0), tracker.Elapsed())

	clock.Advance(42 * time.Minute)
	tracker.Wake()

	assert.Equal(t, int64(42*60*1000), tracker.Elapsed())
	assert.Equal(t, 1, fetches, "Wake must not hit the network")
}

func TestTracker_FailedFetchKeepsStaleSnapshot(t *testing.T) {
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start.Add(time.Hour)}

	calls := 0
	fetch := func(context.Context) (attendance.Snapshot, error) {
		calls++
		if calls == 1 {
			return openSnapshot(0, start), nil
		}
		return attendance.Snapshot{}, errors.New("backend unavailable")
	}

	tracker := New(fetch, Options{
		TickInterval:   time.Hour,
		ResyncInterval: time.Hour,
		Now:            clock.Now,
	})
	tracker.Start(context.Background())
	defer tracker.Stop()

	require.Nil(t, tracker.LastErr())
	before := tracker.Elapsed()

	tracker.Refresh(context.Background())

	assert.Error(t, tracker.LastErr())
	require.NotNil(t, tracker.Snapshot(), "stale snapshot must survive a failed fetch")
	assert.Equal(t, before, tracker.Elapsed(), "failed fetch never clears the clock")

	// Recovery after the failure still works locally.
	clock.Advance(10 * time.Minute)
	tracker.Wake()
	assert.Equal(t, before+10*60*1000, tracker.Elapsed())
}

func TestTracker_ResyncStopsTickingAfterServerClose(t *testing.T) {
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start.Add(2 * time.Hour)}

	var mu sync.Mutex
	closed := false
	fetch := func(context.Context) (attendance.Snapshot, error) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			out := start.Add(90 * time.Minute)
			return closedSnapshot(5_400_000, start, out), nil
		}
		return openSnapshot(0, start), nil
	}

	tracker := New(fetch, Options{
		TickInterval:   5 * time.Millisecond,
		ResyncInterval: 10 * time.Millisecond,
		Now:            clock.Now,
	})
	tracker.Start(context.Background())
	defer tracker.Stop()

	// Server force-closes the session (auto punch-out).
	mu.Lock()
	closed = true
	mu.Unlock()

	require.Eventually(t, func() bool {
		return tracker.Elapsed() == 5_400_000
	}, time.Second, 10*time.Millisecond, "resync must pick up the server-side close")

	// Frozen at the server's worked total from here on.
	clock.Advance(time.Hour)
	time.Sleep(30 * time.Millisecond)
	tracker.Wake()
	assert.Equal(t, int64(5_400_000), tracker.Elapsed())
}

func TestTracker_ClearResetsToZero(t *testing.T) {
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start.Add(time.Hour)}

	tracker := New(fixedFetch(openSnapshot(0, start)), Options{
		TickInterval:   time.Hour,
		ResyncInterval: time.Hour,
		Now:            clock.Now,
	})
	tracker.Start(context.Background())
	defer tracker.Stop()

	require.NotZero(t, tracker.Elapsed())

	tracker.Clear()

	assert.Nil(t, tracker.Snapshot())
	assert.Zero(t, tracker.Elapsed())
}
