// Package cache provides a small byte-blob cache used for downloaded
// item thumbnails.
//
// The cache is keyed by opaque strings (typically image URLs) and stores
// raw bytes, so the same cache can hold encoded PNGs without any envelope
// format. Two implementations exist: a file-based cache for normal CLI
// runs and a null cache for tests or --no-cache operation.
package cache

import "context"

// Cache stores opaque byte blobs by key.
//
// Implementations must treat a missing key as a miss, not an error:
// Get returns (nil, false, nil) when the key is absent or expired.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. Expiry policy is implementation-defined.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
