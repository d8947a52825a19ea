// Package client is the Go SDK for the dashboard surface: sessions,
// the HTTP wrapper, route guarding, debounced list controllers,
// mutation flows and the notification bus.
package client

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// Scope selects which session a store manages. The two scopes persist
// under different keys so one process can hold both sessions at once.
type Scope string

const (
	ScopeAdmin      Scope = "token"
	ScopeSuperAdmin Scope = "super_admin_token"
)

// identityKey is where the serialized identity lives, next to the token.
func (s Scope) identityKey() string {
	if s == ScopeSuperAdmin {
		return "super_admin"
	}
	return "admin"
}

// Storage is the persistence port behind a session store. Implementations
// must be safe for concurrent use.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemStorage is the in-memory Storage used in tests and ephemeral runs.
type MemStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemStorage() *MemStorage {
	return &MemStorage{values: make(map[string]string)}
}

func (m *MemStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// FileStorage persists the session map as a JSON file, the durable
// equivalent of browser local storage.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values := f.load()
	v, ok := values[key]
	return v, ok
}

func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values := f.load()
	values[key] = value
	return f.store(values)
}

func (f *FileStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values := f.load()
	delete(values, key)
	return f.store(values)
}

func (f *FileStorage) load() map[string]string {
	values := make(map[string]string)
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return values
	}
	_ = json.Unmarshal(raw, &values)
	return values
}

func (f *FileStorage) store(values map[string]string) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o600)
}

// SessionStore holds one scope's identity and token, backed by a
// Storage. Rehydration happens exactly once through CheckAuth; until
// then Initialized reports false and guards render nothing.
type SessionStore struct {
	mu            sync.Mutex
	scope         Scope
	storage       Storage
	token         string
	identity      json.RawMessage
	authenticated bool
	initialized   bool
}

func NewSessionStore(scope Scope, storage Storage) *SessionStore {
	return &SessionStore{scope: scope, storage: storage}
}

// Login persists the identity and token and marks the store initialized.
func (s *SessionStore) Login(identity any, token string) error {
	if token == "" {
		return errors.New("login requires a token")
	}

	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}

	if err := s.storage.Set(string(s.scope), token); err != nil {
		return err
	}
	if err := s.storage.Set(s.scope.identityKey(), string(raw)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.identity = raw
	s.authenticated = true
	s.initialized = true
	return nil
}

// Logout clears both storage and in-memory state. The store stays
// initialized: the session is known to be absent, not unknown.
func (s *SessionStore) Logout() {
	_ = s.storage.Delete(string(s.scope))
	_ = s.storage.Delete(s.scope.identityKey())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.identity = nil
	s.authenticated = false
	s.initialized = true
}

// CheckAuth rehydrates from storage synchronously. Safe to call when no
// persisted session exists: the store ends initialized with empty state.
func (s *SessionStore) CheckAuth() {
	token, ok := s.storage.Get(string(s.scope))
	rawIdentity, _ := s.storage.Get(s.scope.identityKey())

	s.mu.Lock()
	defer s.mu.Unlock()
	if ok && token != "" {
		s.token = token
		s.identity = json.RawMessage(rawIdentity)
		s.authenticated = true
	} else {
		s.token = ""
		s.identity = nil
		s.authenticated = false
	}
	s.initialized = true
}

func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Identity unmarshals the stored identity into out.
func (s *SessionStore) Identity(out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return errors.New("no identity in session")
	}
	return json.Unmarshal(s.identity, out)
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *SessionStore) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}
