// Package cache stores rendered plan artifacts keyed by content hash.
//
// Rendering a floor-plan graph to SVG or PNG is deterministic in the plan
// snapshot, so artifacts are cached under a key derived from the snapshot
// hash and the render parameters. Three backends exist: a file cache for
// CLI usage, Redis for multi-instance servers, and a null cache that
// disables caching altogether.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is the interface all backends implement. A miss is not an error:
// Get returns found=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactKey builds the cache key for a rendered artifact: the snapshot
// hash plus every parameter that changes the output.
func ArtifactKey(snapshotHash, format string, threshold float64, detailed bool) string {
	return fmt.Sprintf("artifact:%s:%s:%g:%t", snapshotHash, format, threshold, detailed)
}
