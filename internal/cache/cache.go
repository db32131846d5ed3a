// Package cache memoizes built diagram payloads keyed by a fingerprint of
// their inputs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Fingerprint generates a cache key from serialized build inputs
func Fingerprint(inputs []byte) string {
	hash := sha256.Sum256(inputs)
	return "claimtrace:v1:" + hex.EncodeToString(hash[:])
}
