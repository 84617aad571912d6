package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/rp-magrathea/vogsphere/internal/model"
)

// Cache stores fetched form pages
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// FormKey generates a cache key for a form page URL
func FormKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "vogsphere-form-v1-" + hex.EncodeToString(hash[:])
}

// New builds the form cache described by cfg, or returns nil when caching is disabled
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}
