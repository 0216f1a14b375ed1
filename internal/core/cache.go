// Package core defines the ports between the recruiting services and their
// storage backends.
package core

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// The core defines the interface and the data layer provides implementations.
type CacheRepository interface {
	// Set stores a value in the cache with the given key and TTL.
	// If TTL is 0, the key will not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key from the cache.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// DeletePrefix removes every key starting with prefix and returns how many were removed.
	DeletePrefix(ctx context.Context, prefix string) (int, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}

// ResumeLinkKeyPrefix returns the cache key prefix shared by every cached
// download link of a resume.
func ResumeLinkKeyPrefix(resumeID string) string {
	return "resume:link:" + resumeID + ":"
}
