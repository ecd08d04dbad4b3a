package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process cache with TTL eviction
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates a memory cache with the given default TTL
func NewMemory(defaultTTL time.Duration) *Memory {
	return &Memory{store: gocache.New(defaultTTL, 10*time.Minute)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	value, found := m.store.Get(key)
	if !found {
		return nil, false
	}
	return value.([]byte), true
}

func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	m.store.Set(key, value, ttl)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.store.Delete(key)
	return nil
}

func (m *Memory) Clear() error {
	m.store.Flush()
	return nil
}
