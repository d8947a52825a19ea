package client

import "errors"

// ErrCancelled is returned when the user declines the confirmation
// prompt; nothing was sent.
var ErrCancelled = errors.New("mutation cancelled")

// Mutator runs the write flow every state-changing action follows:
// confirm destructive intent, issue the request, toast the outcome, and
// on success refetch the affected list. No optimistic local update
// happens; the view is consistent only after the refetch.
type Mutator struct {
	// Confirm blocks until the user answers. Nil means no confirmation
	// step (non-destructive actions).
	Confirm func(prompt string) bool
	Bus     *Bus
	Refetch func()
}

func NewMutator(confirm func(string) bool, bus *Bus, refetch func()) *Mutator {
	return &Mutator{Confirm: confirm, Bus: bus, Refetch: refetch}
}

// Run executes one mutation. The action's error message (a
// RequestError's server-sourced text, or the fallback) becomes the
// error toast verbatim.
func (m *Mutator) Run(prompt string, action func() error, successMessage string) error {
	if m.Confirm != nil && prompt != "" && !m.Confirm(prompt) {
		return ErrCancelled
	}

	if err := m.action(action); err != nil {
		if m.Bus != nil {
			m.Bus.Error(errorMessage(err))
		}
		return err
	}

	if m.Bus != nil {
		m.Bus.Success(successMessage)
	}
	if m.Refetch != nil {
		m.Refetch()
	}
	return nil
}

func (m *Mutator) action(fn func() error) error {
	if fn == nil {
		return errors.New("mutation has no action")
	}
	return fn()
}

func errorMessage(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallbackErrorMessage
}
