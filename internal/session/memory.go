package session

import (
	"fmt"
	"sync"

	"logichain-web/internal/models"

	"github.com/gin-gonic/gin"
)

// MemoryStore keeps the session in a map. It is used by tests and by
// callers outside an HTTP request.
type MemoryStore struct {
	mu      sync.RWMutex
	values  map[string]string
	notices []Notice
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Save(p models.Principal, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	raw, err := encode(p)
	if err != nil {
		return fmt.Errorf("encode principal: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[tokenKey] = token
	m.values[userKey] = raw
	return nil
}

func (m *MemoryStore) Load() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decode(m.values[tokenKey], m.values[userKey])
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, tokenKey)
	delete(m.values, userKey)
	return nil
}

// SetRaw writes a single key as is. Tests use it to simulate a tampered
// or half-written store.
func (m *MemoryStore) SetRaw(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryStore) AddFlash(kind, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, Notice{Kind: kind, Message: message})
	return nil
}

func (m *MemoryStore) Flashes() []Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.notices
	m.notices = nil
	return out
}

// Provider hands the same store to every request.
func (m *MemoryStore) Provider() Provider {
	return func(*gin.Context) Store { return m }
}
