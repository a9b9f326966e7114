// Package embedcache stores embedding vectors keyed by an opaque string.
package embedcache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
)

// Store keeps vectors. Implementations must be safe for concurrent use and
// must never hold a lock while calling out of process.
type Store interface {
	Get(ctx context.Context, key string) ([]float32, bool)
	Set(ctx context.Context, key string, vec []float32) error
	// Clear drops every entry written through this store.
	Clear(ctx context.Context) error
}

// Key builds a cache key that changes whenever the provider, model or the
// embedded text change.
func Key(provider, model, name, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s:%s:%s:%x",
		strings.ToLower(strings.TrimSpace(provider)),
		strings.TrimSpace(model),
		strings.TrimSpace(name),
		sum[:8],
	)
}
