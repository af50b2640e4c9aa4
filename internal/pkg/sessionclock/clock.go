package sessionclock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
)

// FetchFunc loads the current attendance snapshot from the source of truth.
type FetchFunc func(ctx context.Context) (attendance.Snapshot, error)

type Options struct {
	// TickInterval is how often the elapsed value is recomputed while the
	// session is open. Defaults to 1 second.
	TickInterval time.Duration
	// ResyncInterval is how often the snapshot is re-fetched while open, so a
	// server-side auto punch-out stops the local ticking promptly. Defaults
	// to 30 seconds.
	ResyncInterval time.Duration
	// RolloverDelay is how long after local midnight the one-shot day-rollover
	// refresh fires. Defaults to 10 seconds.
	RolloverDelay time.Duration
	// Location is the timezone whose midnight triggers the rollover refresh.
	// Defaults to time.Local.
	Location *time.Location
	// Now overrides the clock source. Defaults to time.Now.
	Now func() time.Time
}

func (o *Options) withDefaults() {
	if o.TickInterval <= 0 {
		o.TickInterval = time.Second
	}
	if o.ResyncInterval <= 0 {
		o.ResyncInterval = 30 * time.Second
	}
	if o.RolloverDelay <= 0 {
		o.RolloverDelay = 10 * time.Second
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Tracker derives a monotonically non-decreasing elapsed-work-duration value
// from attendance snapshots. The snapshot is never authoritative here: it is
// replaced wholesale on every fetch and only re-read to recompute the display
// value. While a session is open the value ticks once per TickInterval; while
// closed it equals the snapshot's WorkedMs exactly and does not move.
type Tracker struct {
	fetch FetchFunc
	opts  Options

	mu         sync.Mutex
	snapshot   *attendance.Snapshot
	elapsedMs  int64
	lastErr    error
	tickCancel context.CancelFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(fetch FetchFunc, opts Options) *Tracker {
	opts.withDefaults()
	return &Tracker{fetch: fetch, opts: opts}
}

// Start fetches the initial snapshot and launches the resync and
// day-rollover timers. It returns immediately.
func (t *Tracker) Start(ctx context.Context) {
	t.ctx, t.cancel = context.WithCancel(ctx)
	t.Refresh(t.ctx)

	t.wg.Add(1)
	go t.run()
}

// Stop cancels all timers and waits for them to exit.
func (t *Tracker) Stop() {
	if t.cancel == nil {
		return
	}
	t.cancel()
	t.wg.Wait()
}

func (t *Tracker) run() {
	defer t.wg.Done()

	resync := time.NewTicker(t.opts.ResyncInterval)
	defer resync.Stop()

	rollover := time.NewTimer(t.untilNextRollover())
	defer rollover.Stop()

	for {
		select {
		case <-t.ctx.Done():
			return
		case <-resync.C:
			// Only an open session can be closed out from under us.
			if t.open() {
				t.Refresh(t.ctx)
			}
		case <-rollover.C:
			t.Refresh(t.ctx)
			rollover.Reset(t.untilNextRollover())
		}
	}
}

// Refresh re-fetches the snapshot. A failed fetch records the error and
// leaves the previous snapshot in place, stale but available; it never
// clears the clock.
func (t *Tracker) Refresh(ctx context.Context) {
	snap, err := t.fetch(ctx)
	if err != nil {
		t.mu.Lock()
		t.lastErr = err
		t.mu.Unlock()
		slog.Warn("Session clock: snapshot fetch failed, keeping stale snapshot", "error", err)
		return
	}
	t.setSnapshot(&snap)
}

// Clear drops the snapshot entirely; elapsed goes to 0 and ticking stops.
func (t *Tracker) Clear() {
	t.setSnapshot(nil)
}

// Wake forces a recomputation without a network call. Call it when the host
// resumes from a suspended state, where interval timers may have been
// throttled and the displayed value has drifted behind wall time.
func (t *Tracker) Wake() {
	t.recompute()
}

// Elapsed returns the current display value in milliseconds.
func (t *Tracker) Elapsed() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsedMs
}

// LastErr returns the most recent fetch failure, or nil.
func (t *Tracker) LastErr() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// Snapshot returns the current snapshot, or nil when none has loaded.
func (t *Tracker) Snapshot() *attendance.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.snapshot == nil {
		return nil
	}
	snap := *t.snapshot
	return &snap
}

func (t *Tracker) open() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot != nil && t.snapshot.Open()
}

// setSnapshot replaces the snapshot wholesale: the previous ticking timer is
// cancelled first, the value is recomputed immediately (no initial tick
// delay), and a fresh ticker starts only when the new snapshot is open.
func (t *Tracker) setSnapshot(snap *attendance.Snapshot) {
	t.mu.Lock()

	if t.tickCancel != nil {
		t.tickCancel()
		t.tickCancel = nil
	}

	t.snapshot = snap
	t.lastErr = nil

	if snap == nil {
		t.elapsedMs = 0
		t.mu.Unlock()
		return
	}

	t.elapsedMs = snap.ElapsedMs(t.opts.Now())

	if snap.Open() && t.ctx != nil {
		tickCtx, cancel := context.WithCancel(t.ctx)
		t.tickCancel = cancel
		t.wg.Add(1)
		go t.tickLoop(tickCtx)
	}

	t.mu.Unlock()
}

func (t *Tracker) tickLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.recompute()
		}
	}
}

// recompute re-derives elapsed from the snapshot. Within one open snapshot
// the value is clamped non-decreasing; a snapshot replacement is
// authoritative and may set any value.
func (t *Tracker) recompute() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.snapshot == nil {
		t.elapsedMs = 0
		return
	}

	elapsed := t.snapshot.ElapsedMs(t.opts.Now())
	if t.snapshot.Open() && elapsed < t.elapsedMs {
		elapsed = t.elapsedMs
	}
	t.elapsedMs = elapsed
}

func (t *Tracker) untilNextRollover() time.Duration {
	now := t.opts.Now().In(t.opts.Location)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, t.opts.Location).AddDate(0, 0, 1)
	return midnight.Add(t.opts.RolloverDelay).Sub(now)
}
