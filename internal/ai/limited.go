package ai

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

const defaultTimeout = 10 * time.Second

// Limited decorates an Embedder with a client-side rate limit and a per-call
// timeout. Expired calls surface as context.DeadlineExceeded.
type Limited struct {
	next    Embedder
	limiter *rate.Limiter
	timeout time.Duration
}

// NewLimited wraps next. A non-positive rps disables rate limiting, a
// non-positive timeout falls back to 10s.
func NewLimited(next Embedder, rps float64, burst int, timeout time.Duration) *Limited {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if burst <= 0 {
		burst = 1
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &Limited{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
		timeout: timeout,
	}
}

func (l *Limited) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	return l.next.Embed(ctx, text)
}

func (l *Limited) Provider() string { return l.next.Provider() }

func (l *Limited) Model() string { return l.next.Model() }
