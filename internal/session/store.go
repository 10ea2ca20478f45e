package session

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

type Repository interface {
	Save(s *Session) error
	Get(id string) (*Session, error)
	Delete(id string) error
}

// memoryStore keeps sessions in process memory. Every Get refreshes the
// idle timer; a session idle past the TTL is dropped and reported as
// expired.
type memoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
}

func NewMemoryStore(ttl time.Duration) Repository {
	return &memoryStore{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

func (m *memoryStore) Save(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.touch(time.Now())
	m.sessions[s.ID] = s
	return nil
}

func (m *memoryStore) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := time.Now()
	if s.expired(now, m.ttl) {
		delete(m.sessions, id)
		return nil, ErrExpired
	}
	s.touch(now)
	return s, nil
}

func (m *memoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
