package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager owns all live sessions. Sessions idle past the TTL are dropped by
// Sweep; there is no persistence, a dropped session is gone.
type Manager struct {
	ttl    time.Duration
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager with the given idle TTL. A zero TTL
// disables expiry.
func NewManager(ttl time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		ttl:      ttl,
		logger:   logger,
		sessions: map[string]*Session{},
	}
}

// Create starts a new empty session.
func (m *Manager) Create() *Session {
	s := newSession(uuid.NewString())
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns a live session and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if ok {
		s.touch()
	}
	return s, ok
}

// Delete discards a session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep periodically drops sessions idle past the TTL until the context is
// cancelled. Blocking; run it in its own goroutine.
func (m *Manager) Sweep(ctx context.Context, every time.Duration) {
	if m.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-m.ttl)
			m.mu.Lock()
			for id, s := range m.sessions {
				if s.idleSince().Before(cutoff) {
					delete(m.sessions, id)
					m.logger.Info("session expired", "session_id", id)
				}
			}
			m.mu.Unlock()
		}
	}
}
