package client

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period between the last filter change
// and the filtered fetch.
const DefaultDebounce = 300 * time.Millisecond

// FetchFunc loads one page of a list view. A nil filter map means the
// unfiltered initial set.
type FetchFunc func(filters map[string]string) (any, error)

// FilterController drives a filtered list view: one unfiltered fetch on
// mount, then debounced filtered fetches as the user edits filters.
//
// Filter changes made before the initial load finishes only update the
// pending filter state; they never race the mount fetch. Responses are
// sequence-guarded: a slow early response can not overwrite the result
// of a later request.
type FilterController struct {
	mu       sync.Mutex
	fetch    FetchFunc
	debounce time.Duration
	timer    *time.Timer

	filters     map[string]string
	seq         uint64
	initialDone bool
	loading     bool
	filtering   bool
	result      any
	err         error

	// onUpdate fires after every applied response, for render wiring
	// and tests.
	onUpdate func()
}

func NewFilterController(fetch FetchFunc) *FilterController {
	return &FilterController{
		fetch:    fetch,
		debounce: DefaultDebounce,
		filters:  make(map[string]string),
	}
}

// SetDebounce overrides the quiet period. Mostly for tests.
func (f *FilterController) SetDebounce(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.debounce = d
}

func (f *FilterController) OnUpdate(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onUpdate = fn
}

// Mount issues the initial fetch with no filters applied, regardless of
// any filter state already set.
func (f *FilterController) Mount() {
	f.mu.Lock()
	f.loading = true
	f.seq++
	seq := f.seq
	f.mu.Unlock()

	go f.issue(seq, nil, true)
}

// SetFilter records a filter change and (re)starts the debounce timer.
// Before the initial load completes the change is recorded but no fetch
// is scheduled.
func (f *FilterController) SetFilter(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if value == "" {
		delete(f.filters, key)
	} else {
		f.filters[key] = value
	}

	if !f.initialDone {
		return
	}

	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.debounce, f.fireFiltered)
}

func (f *FilterController) fireFiltered() {
	f.mu.Lock()
	f.filtering = true
	f.seq++
	seq := f.seq
	snapshot := make(map[string]string, len(f.filters))
	for k, v := range f.filters {
		snapshot[k] = v
	}
	f.mu.Unlock()

	f.issue(seq, snapshot, false)
}

// issue runs the fetch and applies its result only if no newer request
// has been started since.
func (f *FilterController) issue(seq uint64, filters map[string]string, initial bool) {
	result, err := f.fetch(filters)

	f.mu.Lock()
	defer f.mu.Unlock()

	if initial {
		f.initialDone = true
		f.loading = false
	}

	if seq != f.seq {
		// Superseded; drop the stale response.
		return
	}

	if !initial {
		f.filtering = false
	}
	if err != nil {
		f.err = err
	} else {
		f.result = result
		f.err = nil
	}

	if f.onUpdate != nil {
		go f.onUpdate()
	}
}

// Refetch re-runs the current query immediately, bypassing the
// debounce. Mutation flows call this after a successful write.
func (f *FilterController) Refetch() {
	f.mu.Lock()
	if !f.initialDone {
		f.mu.Unlock()
		return
	}
	f.seq++
	seq := f.seq
	snapshot := make(map[string]string, len(f.filters))
	for k, v := range f.filters {
		snapshot[k] = v
	}
	f.mu.Unlock()

	f.issue(seq, snapshot, false)
}

func (f *FilterController) Result() (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result, f.err
}

// Loading reports the initial-load phase; Filtering the debounced one.
// The two render differently.
func (f *FilterController) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *FilterController) Filtering() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filtering
}

func (f *FilterController) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
	}
}
