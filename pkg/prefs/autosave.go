package prefs

import (
	"context"
	"time"
)

// DebounceWindow is the default quiet period before an autosave fires.
const DebounceWindow = time.Second

// SaveMode selects the flush policy for an explicit save request.
type SaveMode int

const (
	// SaveIfChanged persists only dirty files.
	SaveIfChanged SaveMode = iota
	// SaveAlways persists every resident file.
	SaveAlways
)

// Autosaver debounces change notifications into a single deferred save.
// It is a two-state machine: idle, or pending with a deadline. Every
// change notification pushes the deadline out by the full window, so a
// continuous burst (a dragged slider, a resized window) produces exactly
// one write, once activity stops for a whole window. This is debounce,
// not throttle: the policy minimizes write amplification during sustained
// adjustment at the cost of delaying the save until the burst ends.
//
// The Autosaver owns no timer; the host drives it by calling Tick once
// per frame or interval with the current time.
type Autosaver struct {
	store    *Store
	window   time.Duration
	deadline time.Time // zero when idle
}

// NewAutosaver binds an Autosaver to a store. A zero window means
// DebounceWindow.
func NewAutosaver(store *Store, window time.Duration) *Autosaver {
	if window <= 0 {
		window = DebounceWindow
	}
	return &Autosaver{store: store, window: window}
}

// MarkChanged records that preferences changed at the given time and
// (re)arms the save deadline one window out.
func (a *Autosaver) MarkChanged(now time.Time) {
	a.deadline = now.Add(a.window)
}

// Pending reports whether a deferred save is armed.
func (a *Autosaver) Pending() bool { return !a.deadline.IsZero() }

// Tick fires the deferred save when the deadline has elapsed. Idle ticks
// and ticks before the deadline are no-ops. A tick that fires performs
// blocking I/O via SaveIfChanged; any error is the aggregated save error,
// and the affected files stay dirty for a later cycle.
func (a *Autosaver) Tick(ctx context.Context, now time.Time) error {
	if a.deadline.IsZero() || now.Before(a.deadline) {
		return nil
	}
	a.deadline = time.Time{}
	return a.store.SaveIfChanged(ctx)
}

// Flush saves immediately with the given mode and cancels any pending
// deadline; the deferred save's work is subsumed by this one.
func (a *Autosaver) Flush(ctx context.Context, mode SaveMode) error {
	a.deadline = time.Time{}
	if mode == SaveAlways {
		return a.store.SaveAll(ctx)
	}
	return a.store.SaveIfChanged(ctx)
}

// Stop disarms the pending save without flushing. Dirty files stay dirty
// and are picked up by the next explicit Flush or the next
// MarkChanged/Tick cycle.
func (a *Autosaver) Stop() { a.deadline = time.Time{} }
