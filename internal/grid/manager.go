package grid

import (
	"sync"
	"time"
)

// ManagerOptions controls construction of a Manager.
type ManagerOptions struct {
	QuietPeriod time.Duration
	// Emit publishes a session event for a user; nil disables events.
	Emit func(userID string, event map[string]any)
}

// Manager hands out one grid Session per user. It is the composition point
// the handlers go through instead of a process-wide singleton, so tests can
// build managers around fake stores.
type Manager struct {
	store TaskStore
	opts  ManagerOptions

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager constructs a Manager over the given store.
func NewManager(store TaskStore, opts ManagerOptions) *Manager {
	return &Manager{
		store:    store,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Session returns the user's session, creating it on first use.
func (m *Manager) Session(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}
	var emit EmitFunc
	if m.opts.Emit != nil {
		emit = func(event map[string]any) {
			m.opts.Emit(userID, event)
		}
	}
	s := NewSession(userID, m.store, SessionOptions{
		QuietPeriod: m.opts.QuietPeriod,
		Emit:        emit,
	})
	m.sessions[userID] = s
	return s
}

// Close stops the flush timers of every session.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		s.Close()
	}
}
