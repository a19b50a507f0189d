// Package cache stores the results of pipeline stages keyed by content hash.
//
// # Overview
//
// Every stage of the pipeline is a pure function of its inputs: the same arc
// list always builds the same graph, and the same graph and operation table
// always evaluate to the same value. Results can therefore be cached under a
// key derived from a hash of the inputs and never need invalidation, only
// expiry to bound disk or memory use.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a local directory (CLI default)
//   - [RedisCache]: a shared Redis server, for teams running the same inputs
//   - [NullCache]: stores nothing, used when caching is disabled
//
// # Keys
//
// A [Keyer] turns stage inputs into cache keys. [DefaultKeyer] hashes the
// inputs; [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as (nil, false, nil), not as an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// TTLs per stage. Results never go stale, so these only bound storage.
const (
	TTLGraph  = 30 * 24 * time.Hour
	TTLRender = 30 * 24 * time.Hour
	TTLEval   = 30 * 24 * time.Hour
)
