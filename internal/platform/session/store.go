package session

import (
	"context"
	"sync"
	"time"
)

// Store persists session records keyed by session ID.
type Store interface {
	Put(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// memoryStore is the default single-process store. Expired records are
// dropped lazily on Get and swept opportunistically on Put.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	lastGC   time.Time
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[string]*Session),
		lastGC:   time.Now(),
	}
}

const gcInterval = 5 * time.Minute

func (m *memoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if now.Sub(m.lastGC) > gcInterval {
		for id, sess := range m.sessions {
			if sess.Expired(now) {
				delete(m.sessions, id)
			}
		}
		m.lastGC = now
	}

	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNoSession
	}
	if s.Expired(time.Now()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, ErrNoSession
	}
	cp := *s
	return &cp, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}
