package client

import (
	"errors"
	"testing"
	"time"
)

func TestMutationHappyPath(t *testing.T) {
	bus := NewBus()
	bus.SetDuration(time.Minute)

	refetched := 0
	m := NewMutator(func(string) bool { return true }, bus, func() { refetched++ })

	err := m.Run("Delete this job?", func() error { return nil }, "Job deleted")
	if err != nil {
		t.Fatal(err)
	}

	if refetched != 1 {
		t.Fatalf("expected one refetch, got %d", refetched)
	}
	active := bus.Active()
	if len(active) != 1 || active[0].Level != LevelSuccess || active[0].Message != "Job deleted" {
		t.Fatalf("expected a success toast, got %v", active)
	}
}

func TestMutationDeclinedConfirmSendsNothing(t *testing.T) {
	bus := NewBus()
	ran := false
	m := NewMutator(func(string) bool { return false }, bus, func() {
		t.Fatal("declined mutation must not refetch")
	})

	err := m.Run("Sure?", func() error { ran = true; return nil }, "done")
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if ran {
		t.Fatal("declined mutation must not run the action")
	}
	if len(bus.Active()) != 0 {
		t.Fatal("declined mutation must not toast")
	}
}

func TestMutationFailureShowsServerMessage(t *testing.T) {
	bus := NewBus()
	bus.SetDuration(time.Minute)

	m := NewMutator(nil, bus, func() {
		t.Fatal("failed mutation must not refetch")
	})

	serverErr := &RequestError{Status: 400, Message: "This job posting is currently closed and not accepting applications"}
	err := m.Run("", func() error { return serverErr }, "ok")
	if err == nil {
		t.Fatal("expected the error to propagate")
	}

	active := bus.Active()
	if len(active) != 1 || active[0].Level != LevelError {
		t.Fatalf("expected an error toast, got %v", active)
	}
	if active[0].Message != serverErr.Message {
		t.Fatalf("toast must carry the server message verbatim, got %q", active[0].Message)
	}
}

func TestMutationFailureFallsBackToGenericMessage(t *testing.T) {
	bus := NewBus()
	bus.SetDuration(time.Minute)

	m := NewMutator(nil, bus, nil)
	_ = m.Run("", func() error { return errors.New("dial tcp: connection refused") }, "ok")

	active := bus.Active()
	if len(active) != 1 || active[0].Message != fallbackErrorMessage {
		t.Fatalf("expected the fallback message, got %v", active)
	}
}
