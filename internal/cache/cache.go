// Package cache defines the optional content-hash-keyed result cache
// collaborator. The pipeline is correct without one; when configured, the
// compile executor consults it before invoking the front end.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/vk/prismc/internal/unit"
)

// Cache is a read-through store of compile results keyed by source content
// hash. Implementations must be safe for concurrent use.
type Cache interface {
	// Lookup returns the cached result for hash, if present.
	Lookup(hash string) (unit.Result, bool, error)
	// Store records the result for hash, replacing any prior entry.
	Store(hash string, res unit.Result) error
}

// Key hashes the exact bytes handed to the front end. Rewritten retry
// attempts hash the rewritten bytes, so a stale hit cannot mask a rewrite.
func Key(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}
