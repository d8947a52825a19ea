package client

import (
	"testing"
	"time"
)

func TestToastAppearsAndExpires(t *testing.T) {
	bus := NewBus()
	bus.SetDuration(50 * time.Millisecond)

	bus.Success("saved")
	if got := bus.Active(); len(got) != 1 || got[0].Message != "saved" {
		t.Fatalf("expected one active notification, got %v", got)
	}

	waitFor(t, func() bool { return len(bus.Active()) == 0 })
}

func TestManualDismissRemovesOnlyOne(t *testing.T) {
	bus := NewBus()
	bus.SetDuration(time.Minute)

	first := bus.Error("boom")
	second := bus.Success("ok")

	bus.Dismiss(first)

	active := bus.Active()
	if len(active) != 1 || active[0].ID != second {
		t.Fatalf("expected only the second notification to remain, got %v", active)
	}

	// Dismissing again is a no-op.
	bus.Dismiss(first)
	if len(bus.Active()) != 1 {
		t.Fatal("double dismissal removed the wrong notification")
	}
}

func TestDismissBeforeExpiryStopsTimer(t *testing.T) {
	bus := NewBus()
	bus.SetDuration(30 * time.Millisecond)

	id := bus.Push(LevelInfo, "short lived")
	bus.Dismiss(id)

	time.Sleep(60 * time.Millisecond)
	if len(bus.Active()) != 0 {
		t.Fatal("expected empty stack after dismissal")
	}
}

func TestSubscribersSeeEveryChange(t *testing.T) {
	bus := NewBus()
	bus.SetDuration(time.Minute)

	updates := make(chan []Notification, 8)
	unsubscribe := bus.Subscribe(func(stack []Notification) {
		updates <- stack
	})
	defer unsubscribe()

	// Initial snapshot.
	if stack := <-updates; len(stack) != 0 {
		t.Fatalf("expected empty initial snapshot, got %v", stack)
	}

	bus.Success("one")
	if stack := <-updates; len(stack) != 1 {
		t.Fatalf("expected one notification after push, got %v", stack)
	}

	bus.Success("two")
	if stack := <-updates; len(stack) != 2 {
		t.Fatalf("expected stacked notifications, got %v", stack)
	}
}
