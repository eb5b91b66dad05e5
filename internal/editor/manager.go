package editor

import (
	"sync"

	"github.com/google/uuid"
)

// Manager tracks the open editing session per project. Opening a project that
// already has a session discards the old one and reconstructs from persisted
// state, matching the "switching projects rebuilds the session" contract.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Open registers the session, replacing any previous one for the project.
func (m *Manager) Open(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ProjectID()] = s
}

// Get returns the open session for a project.
func (m *Manager) Get(projectID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[projectID]
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

// Close discards the session.
func (m *Manager) Close(projectID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, projectID)
}
