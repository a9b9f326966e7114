package embedcache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	vec     []float32
	expires time.Time
}

// Memory is an in-process Store. A zero TTL keeps entries for the process
// lifetime.
type Memory struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemory returns an empty in-process store.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]float32, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if m.expired(e) {
		m.mu.Lock()
		// A Set may have refreshed the key since the read lock was dropped.
		if cur, ok := m.entries[key]; ok && m.expired(cur) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return e.vec, true
}

func (m *Memory) expired(e entry) bool {
	return !e.expires.IsZero() && m.now().After(e.expires)
}

// Set stores a copy of vec. Concurrent writers of the same key race; the last
// one wins.
func (m *Memory) Set(_ context.Context, key string, vec []float32) error {
	stored := make([]float32, len(vec))
	copy(stored, vec)

	e := entry{vec: stored}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
	return nil
}

// size reports the number of live and expired-but-unread entries.
func (m *Memory) size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
