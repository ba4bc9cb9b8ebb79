package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/numenapp/numen-service/internal/ledger"
)

// Session owns one isolated ledger instance. All ledger access goes
// through WithLedger, which serializes concurrent requests for the same
// session. Ledgers are never shared across sessions.
type Session struct {
	ID        string
	UserID    int64
	CreatedAt time.Time

	mu     sync.Mutex
	ledger *ledger.Ledger
}

// WithLedger runs fn with exclusive access to the session's ledger
func (s *Session) WithLedger(fn func(l *ledger.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.ledger)
}

// Manager tracks the active sessions
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create registers a new session around the given ledger and returns it
func (m *Manager) Create(userID int64, l *ledger.Ledger) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
		ledger:    l,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get looks up a session by id
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete drops a session. The ledger instance is released with it.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Range calls fn for every active session. Used by the reminder
// scheduler.
func (m *Manager) Range(fn func(s *Session)) {
	m.mu.RLock()
	snapshot := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		snapshot = append(snapshot, s)
	}
	m.mu.RUnlock()
	for _, s := range snapshot {
		fn(s)
	}
}
