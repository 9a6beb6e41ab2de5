// Package cache stores coach feedback responses so repeated analyses of the
// same board do not hit the language model again.
//
// Three backends implement [Cache]:
//
//   - [NullCache] never stores anything (caching disabled).
//   - [FileCache] keeps entries as JSON files under a directory (CLI use).
//   - [RedisCache] keeps entries in Redis (shared by server replicas).
//
// Keys come from a [Keyer] so every backend agrees on the key layout.
// [ScopedKeyer] prefixes keys to separate namespaces in a shared store.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the value stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
