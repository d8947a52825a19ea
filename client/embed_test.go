package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
)

func TestVerifyTenant(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		company string
		want    EmbedState
	}{
		{"match", "company_id=A", "A", EmbedOK},
		{"mismatch", "company_id=B", "A", EmbedMismatch},
		{"missing param", "", "A", EmbedMisconfigured},
		{"missing param with session", "other=x", "A", EmbedMisconfigured},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			query, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatal(err)
			}
			if got := VerifyTenant(query, tc.company); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMismatchedEmbedIssuesNoRequests(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store := NewSessionStore(ScopeAdmin, NewMemStorage())
	api := New(server.URL, store, nil)

	query, _ := url.ParseQuery("company_id=B")
	gate := NewEmbedGate(query, "A", api)

	if gate.State() != EmbedMismatch {
		t.Fatalf("expected EmbedMismatch, got %v", gate.State())
	}

	if err := gate.Get(context.Background(), "/api/embed/jobs", nil, nil); err == nil {
		t.Fatal("expected the gate to refuse the call")
	}
	if err := gate.Patch(context.Background(), "/api/embed/applications/x/status", nil, nil); err == nil {
		t.Fatal("expected the gate to refuse the call")
	}

	if n := requests.Load(); n != 0 {
		t.Fatalf("mismatched embed issued %d requests, want 0", n)
	}
}

func TestMatchedEmbedPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jobs":[]}`))
	}))
	defer server.Close()

	store := NewSessionStore(ScopeAdmin, NewMemStorage())
	api := New(server.URL, store, nil)

	query, _ := url.ParseQuery("company_id=A")
	gate := NewEmbedGate(query, "A", api)

	if err := gate.Get(context.Background(), "/api/embed/jobs", nil, nil); err != nil {
		t.Fatalf("matched embed should fetch normally: %v", err)
	}
}
