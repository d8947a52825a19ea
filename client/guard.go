package client

import "sync"

// GuardState is what the layout should render right now.
type GuardState int

const (
	// GuardPending means render nothing: either the first mount has not
	// happened or the session store is still rehydrating.
	GuardPending GuardState = iota
	// GuardAllowed means render the protected content.
	GuardAllowed
	// GuardRedirected means the viewer was sent to the login route.
	GuardRedirected
)

// Guard gates a protected layout on session state. Nothing renders
// until both the mount has happened and the session store finished its
// one-time rehydration; after that an unauthenticated viewer is
// redirected to the login route exactly once.
type Guard struct {
	mu         sync.Mutex
	store      *SessionStore
	loginRoute string
	redirect   func(route string)
	mounted    bool
	redirected bool
}

func NewGuard(store *SessionStore, loginRoute string, redirect func(route string)) *Guard {
	return &Guard{
		store:      store,
		loginRoute: loginRoute,
		redirect:   redirect,
	}
}

// Mount marks the layout as client-rendered and kicks off session
// rehydration if it has not happened yet.
func (g *Guard) Mount() GuardState {
	g.mu.Lock()
	g.mounted = true
	g.mu.Unlock()

	if !g.store.Initialized() {
		g.store.CheckAuth()
	}
	return g.State()
}

// State resolves the current render decision. Redirecting is a one-shot:
// repeated calls after the redirect keep reporting GuardRedirected
// without firing the callback again.
func (g *Guard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.redirected {
		return GuardRedirected
	}
	if !g.mounted || !g.store.Initialized() {
		return GuardPending
	}
	if !g.store.IsAuthenticated() {
		g.redirected = true
		if g.redirect != nil {
			g.redirect(g.loginRoute)
		}
		return GuardRedirected
	}
	return GuardAllowed
}
