// Package cache stores rendered diagrams so unchanged DOT text is not laid
// out again.
//
// [Cache] is a small byte-oriented key-value interface with a file
// implementation for the CLI and a no-op implementation for tests and
// --no-cache runs. A [Keyer] derives keys from the DOT text and the render
// settings; wrap it in a [ScopedKeyer] to separate key spaces, for example
// one per engine version.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the data for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 keeps it forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// RenderKeyOpts are the settings that change a rendered artifact.
type RenderKeyOpts struct {
	Format string `json:"format"`
	Engine string `json:"engine"`
}

// Keyer derives cache keys.
type Keyer interface {
	// HTTPKey keys a fetched document.
	HTTPKey(namespace, key string) string
	// RenderKey keys the rendering of the DOT text hashed as dotHash.
	RenderKey(dotHash string, opts RenderKeyOpts) string
}

// DefaultKeyer is the unscoped [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// RenderKey returns "render:<hash of dotHash and opts>".
func (DefaultKeyer) RenderKey(dotHash string, opts RenderKeyOpts) string {
	return hashKey("render", dotHash, opts)
}
