package state

import (
	"log/slog"
	"sync"
)

// Listener observes every dispatched action together with the resulting state.
type Listener func(a Action, s State)

// Store owns the application state. Dispatch serializes reducer calls; readers
// get snapshots that later dispatches never modify.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners []Listener
}

// NewStore creates a store holding initial.
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// Subscribe registers l. Listeners run synchronously inside Dispatch, in
// registration order, and must not call Dispatch themselves.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Dispatch applies a and returns the new snapshot.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, a)
	for _, l := range s.listeners {
		l(a, s.state)
	}
	return s.state
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LogListener logs each action at debug level.
func LogListener(logger *slog.Logger) Listener {
	return func(a Action, st State) {
		logger.Debug("state updated",
			slog.String("action", a.Kind()),
			slog.Bool("authenticated", st.Session.IsAuthenticated),
			slog.Int("cart_lines", len(st.Cart.Lines)),
			slog.Int("cart_total", st.Cart.Total),
			slog.Int("wishlist_items", st.Wishlist.Count()),
		)
	}
}
