package client

import (
	"sync"
	"testing"
	"time"
)

type recordingFetcher struct {
	mu    sync.Mutex
	calls []map[string]string
	delay time.Duration
	resp  func(filters map[string]string) any
}

func (r *recordingFetcher) fetch(filters map[string]string) (any, error) {
	r.mu.Lock()
	var copied map[string]string
	if filters != nil {
		copied = make(map[string]string, len(filters))
		for k, v := range filters {
			copied[k] = v
		}
	}
	r.calls = append(r.calls, copied)
	delay := r.delay
	r.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if r.resp != nil {
		return r.resp(filters), nil
	}
	return filters, nil
}

func (r *recordingFetcher) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recordingFetcher) call(i int) map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[i]
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestMountFetchesUnfiltered(t *testing.T) {
	fetcher := &recordingFetcher{}
	ctrl := NewFilterController(fetcher.fetch)
	defer ctrl.Close()

	// Pre-existing filter state must be ignored by the mount fetch.
	ctrl.SetFilter("status", "pending")

	ctrl.Mount()
	waitFor(t, func() bool { return fetcher.callCount() == 1 })

	if got := fetcher.call(0); got != nil {
		t.Fatalf("initial fetch should carry no filters, got %v", got)
	}
	if ctrl.Loading() {
		t.Fatal("loading flag should clear after the initial fetch")
	}
}

func TestDebounceCoalescesRapidChanges(t *testing.T) {
	fetcher := &recordingFetcher{}
	ctrl := NewFilterController(fetcher.fetch)
	ctrl.SetDebounce(50 * time.Millisecond)
	defer ctrl.Close()

	ctrl.Mount()
	waitFor(t, func() bool { return fetcher.callCount() == 1 })

	ctrl.SetFilter("status", "pending")
	time.Sleep(10 * time.Millisecond)
	ctrl.SetFilter("status", "shortlisted")

	waitFor(t, func() bool { return fetcher.callCount() == 2 })
	time.Sleep(100 * time.Millisecond)

	if n := fetcher.callCount(); n != 2 {
		t.Fatalf("expected exactly one filtered fetch after the mount fetch, got %d total", n)
	}
	if got := fetcher.call(1)["status"]; got != "shortlisted" {
		t.Fatalf("filtered fetch should use the last-set value, got %q", got)
	}
}

func TestFilterChangesSuppressedBeforeInitialLoad(t *testing.T) {
	fetcher := &recordingFetcher{delay: 80 * time.Millisecond}
	ctrl := NewFilterController(fetcher.fetch)
	ctrl.SetDebounce(10 * time.Millisecond)
	defer ctrl.Close()

	ctrl.Mount()
	ctrl.SetFilter("status", "pending")
	time.Sleep(40 * time.Millisecond)

	// Initial fetch still in flight; the filter change must not have
	// scheduled a second one.
	if n := fetcher.callCount(); n != 1 {
		t.Fatalf("expected only the mount fetch so far, got %d", n)
	}
}

func TestStaleResponseNeverOverwritesNewer(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0

	fetch := func(filters map[string]string) (any, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 2 {
			// First filtered request: slow.
			<-release
			return "stale", nil
		}
		return filters["status"], nil
	}

	ctrl := NewFilterController(fetch)
	ctrl.SetDebounce(10 * time.Millisecond)
	defer ctrl.Close()

	ctrl.Mount()
	waitFor(t, func() bool { mu.Lock(); defer mu.Unlock(); return calls == 1 })

	ctrl.SetFilter("status", "pending")
	waitFor(t, func() bool { mu.Lock(); defer mu.Unlock(); return calls == 2 })

	ctrl.SetFilter("status", "shortlisted")
	waitFor(t, func() bool { mu.Lock(); defer mu.Unlock(); return calls == 3 })
	waitFor(t, func() bool {
		result, _ := ctrl.Result()
		return result == "shortlisted"
	})

	// Let the slow early request finish; its result must be dropped.
	close(release)
	time.Sleep(50 * time.Millisecond)

	result, _ := ctrl.Result()
	if result != "shortlisted" {
		t.Fatalf("stale response overwrote newer result: got %v", result)
	}
}

func TestRefetchUsesCurrentFilters(t *testing.T) {
	fetcher := &recordingFetcher{}
	ctrl := NewFilterController(fetcher.fetch)
	ctrl.SetDebounce(10 * time.Millisecond)
	defer ctrl.Close()

	ctrl.Mount()
	waitFor(t, func() bool { return fetcher.callCount() == 1 })

	ctrl.SetFilter("status", "pending")
	waitFor(t, func() bool { return fetcher.callCount() == 2 })

	ctrl.Refetch()
	waitFor(t, func() bool { return fetcher.callCount() == 3 })

	if got := fetcher.call(2)["status"]; got != "pending" {
		t.Fatalf("refetch should reuse current filters, got %q", got)
	}
}
