package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for report caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ReportKey derives a versioned cache key from the product identifier
// and the exact input text. Identical input must hit the same entry so
// a cached report is indistinguishable from recomputation.
func ReportKey(product, text string) string {
	hash := sha256.Sum256([]byte(product + "\x00" + text))
	return "adcomply-v1-" + hex.EncodeToString(hash[:])
}
