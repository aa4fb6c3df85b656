package store

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoryConfig configures the in-process LRU cache.
type MemoryConfig struct {
	// MaxEntries bounds the number of entries the cache holds.
	MaxEntries int
}

// DefaultMemoryConfig provides default values for MemoryConfig.
var DefaultMemoryConfig = MemoryConfig{MaxEntries: 4096}

var _ Provider = (*Memory)(nil)

// Memory is a thread-safe, TTL-aware in-process LRU cache.
type Memory struct {
	mu sync.RWMutex

	inner *lru.Cache[string, []byte]
	ttl   map[string]time.Time

	now func() time.Time
}

// NewMemory creates an in-memory Provider. An invalid config falls back
// to DefaultMemoryConfig.
func NewMemory(cfg MemoryConfig) *Memory {
	if cfg.MaxEntries <= 0 {
		cfg = DefaultMemoryConfig
	}
	m := &Memory{ttl: make(map[string]time.Time), now: time.Now}
	inner, err := lru.NewWithEvict[string, []byte](cfg.MaxEntries, m.onEvict)
	if err != nil {
		// cfg.MaxEntries is always positive here; NewWithEvict only
		// fails for non-positive size.
		inner, _ = lru.NewWithEvict[string, []byte](DefaultMemoryConfig.MaxEntries, m.onEvict)
	}
	m.inner = inner
	return m
}

func (m *Memory) onEvict(key string, _ []byte) {
	delete(m.ttl, key)
}

// Get retrieves key, returning nil if absent or past its TTL.
func (m *Memory) Get(_ context.Context, key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	if expires, ok := m.ttl[key]; ok && m.now().After(expires) {
		m.inner.Remove(key)
		delete(m.ttl, key)
		return nil
	}

	v, ok := m.inner.Get(key)
	if !ok {
		return nil
	}
	return v
}

// Set stores value under key with the given ttl.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inner.Add(key, value)
	m.ttl[key] = m.now().Add(ttl)
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.ttl, key)
	return m.inner.Remove(key)
}

// Size returns the number of entries currently stored.
func (m *Memory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.inner.Len()
}
