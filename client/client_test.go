package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSuperAdminTokenWinsWhenBothPresent(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	storage := NewMemStorage()
	admin := NewSessionStore(ScopeAdmin, storage)
	super := NewSessionStore(ScopeSuperAdmin, storage)
	_ = admin.Login(map[string]string{}, "admin-tok")
	_ = super.Login(map[string]string{}, "super-tok")

	api := New(server.URL, admin, super)
	if err := api.Get(context.Background(), "/api/superadmin/stats", nil, nil); err != nil {
		t.Fatal(err)
	}

	if seen != "Bearer super-tok" {
		t.Fatalf("expected the super-admin token, got %q", seen)
	}
}

func TestAdminTokenUsedWhenSuperAbsent(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	storage := NewMemStorage()
	admin := NewSessionStore(ScopeAdmin, storage)
	super := NewSessionStore(ScopeSuperAdmin, storage)
	_ = admin.Login(map[string]string{}, "admin-tok")

	api := New(server.URL, admin, super)
	if err := api.Get(context.Background(), "/api/jobs", nil, nil); err != nil {
		t.Fatal(err)
	}

	if seen != "Bearer admin-tok" {
		t.Fatalf("expected the admin token, got %q", seen)
	}
}

func TestErrorMessageExtraction(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"simple message", `{"message":"Job not found"}`, "Job not found"},
		{"structured validation", `{"errors":{"email":["Value must be a valid email address"]}}`, "email: Value must be a valid email address"},
		{"empty body", ``, fallbackErrorMessage},
		{"unknown shape", `{"detail":"nope"}`, fallbackErrorMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractMessage([]byte(tc.body)); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestServerErrorSurfacesAsRequestError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"You have already applied to this job"}`))
	}))
	defer server.Close()

	api := New(server.URL, nil, nil)
	err := api.Post(context.Background(), "/api/public/jobs/x/apply", map[string]string{}, nil)

	reqErr, ok := err.(*RequestError)
	if !ok {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if reqErr.Status != http.StatusConflict || reqErr.Message != "You have already applied to this job" {
		t.Fatalf("unexpected error %+v", reqErr)
	}
}
