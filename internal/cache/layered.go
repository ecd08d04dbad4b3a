package cache

import "time"

// Layered combines a fast cache with a slower persistent one. Reads check
// the fast layer first and promote disk hits into memory.
type Layered struct {
	fast Cache
	slow Cache
}

// NewLayered creates a layered cache from explicit components
func NewLayered(fast, slow Cache) *Layered {
	return &Layered{fast: fast, slow: slow}
}

func (l *Layered) Get(key string) ([]byte, bool) {
	if value, found := l.fast.Get(key); found {
		return value, true
	}
	value, found := l.slow.Get(key)
	if !found {
		return nil, false
	}
	_ = l.fast.Set(key, value, 0)
	return value, true
}

func (l *Layered) Set(key string, value []byte, ttl time.Duration) error {
	if err := l.fast.Set(key, value, ttl); err != nil {
		return err
	}
	return l.slow.Set(key, value, ttl)
}

func (l *Layered) Delete(key string) error {
	if err := l.fast.Delete(key); err != nil {
		return err
	}
	return l.slow.Delete(key)
}

func (l *Layered) Clear() error {
	if err := l.fast.Clear(); err != nil {
		return err
	}
	return l.slow.Clear()
}
