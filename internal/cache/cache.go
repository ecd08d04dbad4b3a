package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface for provider fetch results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a URL
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "fundlens:v1:" + hex.EncodeToString(sum[:])
}
