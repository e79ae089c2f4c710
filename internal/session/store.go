package session

import (
	"context"
	"errors"
	"sync"
)

var ErrNoSession = errors.New("no active session")

// Store is the persistence boundary for the session credential. Load returns
// ErrNoSession when nothing is stored; Clear on an empty store is a no-op.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the session in process memory. Used in tests and as the
// fallback when no persistence is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	current Session
	ok      bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.ok {
		return Session{}, ErrNoSession
	}
	return m.current, nil
}

func (m *MemoryStore) Save(ctx context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = s
	m.ok = true
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Session{}
	m.ok = false
	return nil
}
