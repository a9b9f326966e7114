package ai

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable is returned when no provider credential is configured.
	ErrUnavailable = errors.New("embedding provider unavailable")
	// ErrEmptyEmbedding is returned when a provider answered without a usable vector.
	ErrEmptyEmbedding = errors.New("embedding provider returned an empty vector")
)

// Embedder maps a text to a fixed-length vector. Implementations must not
// leak provider-specific error shapes: any failure is an error wrapping one of
// the sentinels above or the underlying transport error.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Provider() string
	Model() string
}

// Available reports whether e can be called at all.
func Available(e Embedder) bool {
	return e != nil
}
