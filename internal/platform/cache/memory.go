package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// entry pairs a stored value with the moment it was written.
type entry struct {
	data     []byte
	storedAt time.Time
}

// MemoryStore is the in-process Store used when Redis is not configured.
// Values are kept JSON-encoded so Get/Set semantics match RedisStore exactly.
// The clock is injectable for tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a MemoryStore. If ttl is 0 or negative it defaults
// to DefaultTTL. If now is nil, time.Now is used.
func NewMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached value for key if it is still within its TTL.
// Expired entries are dropped on access.
func (m *MemoryStore) Get(_ context.Context, key string, dest any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return false
	}
	if m.now().Sub(e.storedAt) >= m.ttl {
		delete(m.entries, key)
		return false
	}
	return json.Unmarshal(e.data, dest) == nil
}

// Set overwrites the entry for key with value and a fresh timestamp.
func (m *MemoryStore) Set(_ context.Context, key string, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{data: b, storedAt: m.now()}
}

// Clear evicts every entry.
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]entry)
	return nil
}
