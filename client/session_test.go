package client

import (
	"path/filepath"
	"testing"
)

func TestSessionLoginLogoutRoundTrip(t *testing.T) {
	store := NewSessionStore(ScopeAdmin, NewMemStorage())

	if store.Initialized() {
		t.Fatal("fresh store must not report initialized")
	}

	identity := map[string]string{"id": "a1", "company_id": "c1"}
	if err := store.Login(identity, "tok-123"); err != nil {
		t.Fatal(err)
	}

	if !store.IsAuthenticated() || !store.Initialized() {
		t.Fatal("login must authenticate and initialize")
	}
	if store.Token() != "tok-123" {
		t.Fatalf("unexpected token %q", store.Token())
	}

	var got map[string]string
	if err := store.Identity(&got); err != nil {
		t.Fatal(err)
	}
	if got["company_id"] != "c1" {
		t.Fatalf("identity not preserved: %v", got)
	}

	store.Logout()
	if store.IsAuthenticated() {
		t.Fatal("logout must clear authentication")
	}
	if !store.Initialized() {
		t.Fatal("store stays initialized after logout")
	}
}

func TestCheckAuthWithEmptyStorage(t *testing.T) {
	store := NewSessionStore(ScopeAdmin, NewMemStorage())

	store.CheckAuth()
	if store.IsAuthenticated() {
		t.Fatal("empty storage must not authenticate")
	}
	if !store.Initialized() {
		t.Fatal("check must mark the store initialized even when empty")
	}
}

func TestScopesAreIndependent(t *testing.T) {
	storage := NewMemStorage()
	admin := NewSessionStore(ScopeAdmin, storage)
	super := NewSessionStore(ScopeSuperAdmin, storage)

	if err := admin.Login(map[string]string{"id": "a1"}, "admin-tok"); err != nil {
		t.Fatal(err)
	}
	if err := super.Login(map[string]string{"id": "s1"}, "super-tok"); err != nil {
		t.Fatal(err)
	}

	admin.Logout()
	if super.Token() != "super-tok" {
		t.Fatal("admin logout must not touch the super-admin session")
	}

	rehydrated := NewSessionStore(ScopeSuperAdmin, storage)
	rehydrated.CheckAuth()
	if !rehydrated.IsAuthenticated() {
		t.Fatal("super-admin session must survive the admin logout")
	}
}

func TestFileStoragePersistsAcrossStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewSessionStore(ScopeAdmin, NewFileStorage(path))
	if err := first.Login(map[string]string{"id": "a1"}, "tok"); err != nil {
		t.Fatal(err)
	}

	second := NewSessionStore(ScopeAdmin, NewFileStorage(path))
	second.CheckAuth()
	if !second.IsAuthenticated() || second.Token() != "tok" {
		t.Fatal("session did not survive the file round trip")
	}
}
