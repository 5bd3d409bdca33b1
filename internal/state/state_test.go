package state

import (
	"errors"
	"testing"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()
	if got := store.Snapshot().Phase; got != BOOTING {
		t.Fatalf("expected BOOTING, got %s", got)
	}

	store.SetPhase(RUNNING)
	store.UpdateViewport(Viewport{Width: 800, Height: 600})
	store.AddFrame()
	store.AddFrame()

	snap := store.Snapshot()
	if snap.Phase != RUNNING || snap.Frames != 2 || snap.Viewport.Width != 800 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	store.Fail(errors.New("fb gone"))
	snap = store.Snapshot()
	if snap.Phase != ERROR || snap.Err != "fb gone" {
		t.Fatalf("expected ERROR with cause, got %+v", snap)
	}
}

func TestPhaseString(t *testing.T) {
	if got := Phase(42).String(); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
	if got := STOPPED.String(); got != "stopped" {
		t.Fatalf("expected stopped, got %q", got)
	}
}
