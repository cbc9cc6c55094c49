package prefs

import (
	"context"
	"testing"
	"time"
)

// autosaveFixture wires an Autosaver to a store with one dirty-able file
// and a write counter.
type autosaveFixture struct {
	saver   *Autosaver
	file    *File
	backend *countingBackend
	start   time.Time
}

func newAutosaveFixture(t *testing.T) *autosaveFixture {
	t.Helper()
	backend := &countingBackend{Backend: NewMemory()}
	s := newTestStore(t, backend, JSON{})
	f, err := s.Open(context.Background(), "app")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return &autosaveFixture{
		saver:   NewAutosaver(s, time.Second),
		file:    f,
		backend: backend,
		start:   time.Now(),
	}
}

// at converts an offset in seconds into an absolute test time.
func (fx *autosaveFixture) at(secs float64) time.Time {
	return fx.start.Add(time.Duration(secs * float64(time.Second)))
}

func TestAutosaveDebounceSingleFire(t *testing.T) {
	ctx := context.Background()
	fx := newAutosaveFixture(t)

	// Marks at t=0.0, 0.3, 0.6 with a 1s window: exactly one save, and
	// only once a full window has passed since the last mark (t=1.6).
	for _, mark := range []float64{0.0, 0.3, 0.6} {
		fx.file.Root().SetInt("n", int64(mark*10)+1)
		fx.saver.MarkChanged(fx.at(mark))
	}

	for ts := 0.1; ts < 1.6; ts += 0.1 {
		if err := fx.saver.Tick(ctx, fx.at(ts)); err != nil {
			t.Fatalf("Tick(%v): %v", ts, err)
		}
	}
	if fx.backend.writes != 0 {
		t.Fatalf("saved %d times before the window elapsed", fx.backend.writes)
	}

	if err := fx.saver.Tick(ctx, fx.at(1.6)); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if fx.backend.writes != 1 {
		t.Fatalf("writes = %d, want 1", fx.backend.writes)
	}
	if fx.file.Dirty() {
		t.Error("file dirty after autosave")
	}

	// Later ticks are idle no-ops.
	if err := fx.saver.Tick(ctx, fx.at(5)); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if fx.backend.writes != 1 {
		t.Fatalf("idle tick wrote, writes = %d", fx.backend.writes)
	}
}

func TestAutosaveExplicitFlushCancelsTimer(t *testing.T) {
	ctx := context.Background()
	fx := newAutosaveFixture(t)

	fx.file.Root().SetInt("n", 1)
	fx.saver.MarkChanged(fx.at(0))
	if !fx.saver.Pending() {
		t.Fatal("mark did not arm the saver")
	}

	if err := fx.saver.Flush(ctx, SaveIfChanged); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if fx.backend.writes != 1 {
		t.Fatalf("writes = %d, want 1", fx.backend.writes)
	}
	if fx.saver.Pending() {
		t.Error("flush left the saver pending")
	}

	// The original deadline passes without another write.
	if err := fx.saver.Tick(ctx, fx.at(1.0)); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if fx.backend.writes != 1 {
		t.Fatalf("tick after flush wrote, writes = %d", fx.backend.writes)
	}
}

func TestAutosaveFlushAlways(t *testing.T) {
	ctx := context.Background()
	fx := newAutosaveFixture(t)

	// Nothing dirty: SaveAlways still writes, SaveIfChanged does not.
	if err := fx.saver.Flush(ctx, SaveIfChanged); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if fx.backend.writes != 0 {
		t.Fatalf("writes = %d, want 0", fx.backend.writes)
	}
	if err := fx.saver.Flush(ctx, SaveAlways); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if fx.backend.writes != 1 {
		t.Fatalf("writes = %d, want 1", fx.backend.writes)
	}
}

func TestAutosaveStopKeepsDirty(t *testing.T) {
	ctx := context.Background()
	fx := newAutosaveFixture(t)

	fx.file.Root().SetInt("n", 1)
	fx.saver.MarkChanged(fx.at(0))
	fx.saver.Stop()

	if fx.saver.Pending() {
		t.Error("Stop left the saver pending")
	}
	if err := fx.saver.Tick(ctx, fx.at(10)); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if fx.backend.writes != 0 {
		t.Fatalf("stopped saver wrote, writes = %d", fx.backend.writes)
	}
	if !fx.file.Dirty() {
		t.Error("Stop discarded the dirty flag")
	}

	// Re-arming after Stop saves as usual.
	fx.saver.MarkChanged(fx.at(10))
	if err := fx.saver.Tick(ctx, fx.at(11)); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if fx.backend.writes != 1 {
		t.Fatalf("writes = %d, want 1", fx.backend.writes)
	}
}

func TestAutosaveDefaultWindow(t *testing.T) {
	a := NewAutosaver(nil, 0)
	if a.window != DebounceWindow {
		t.Errorf("window = %v, want %v", a.window, DebounceWindow)
	}
}
