package client

import "testing"

func TestGuardRendersNothingBeforeMount(t *testing.T) {
	store := NewSessionStore(ScopeAdmin, NewMemStorage())
	guard := NewGuard(store, "/login", nil)

	if state := guard.State(); state != GuardPending {
		t.Fatalf("expected GuardPending before mount, got %v", state)
	}
}

func TestGuardRedirectsUnauthenticatedExactlyOnce(t *testing.T) {
	store := NewSessionStore(ScopeAdmin, NewMemStorage())

	redirects := 0
	var target string
	guard := NewGuard(store, "/login", func(route string) {
		redirects++
		target = route
	})

	if state := guard.Mount(); state != GuardRedirected {
		t.Fatalf("expected redirect for empty session, got %v", state)
	}
	if redirects != 1 || target != "/login" {
		t.Fatalf("expected one redirect to /login, got %d to %q", redirects, target)
	}

	// Re-evaluating must not redirect again.
	for i := 0; i < 3; i++ {
		if state := guard.State(); state != GuardRedirected {
			t.Fatalf("expected stable GuardRedirected, got %v", state)
		}
	}
	if redirects != 1 {
		t.Fatalf("redirect fired %d times, want 1", redirects)
	}
}

func TestGuardAllowsAuthenticatedSession(t *testing.T) {
	storage := NewMemStorage()
	seeded := NewSessionStore(ScopeAdmin, storage)
	if err := seeded.Login(map[string]string{"id": "a1"}, "tok"); err != nil {
		t.Fatal(err)
	}

	// Fresh store over the same storage: rehydrates on mount.
	store := NewSessionStore(ScopeAdmin, storage)
	guard := NewGuard(store, "/login", func(string) {
		t.Fatal("authenticated session must not redirect")
	})

	if state := guard.Mount(); state != GuardAllowed {
		t.Fatalf("expected GuardAllowed, got %v", state)
	}
}

func TestGuardPendingWhileUninitialized(t *testing.T) {
	store := NewSessionStore(ScopeAdmin, NewMemStorage())
	guard := NewGuard(store, "/login", func(string) {
		t.Fatal("must not redirect before initialization")
	})

	guard.mu.Lock()
	guard.mounted = true
	guard.mu.Unlock()

	// Mounted but the store never rehydrated: still pending.
	if state := guard.State(); state != GuardPending {
		t.Fatalf("expected GuardPending, got %v", state)
	}
}
