package chain

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter provides per-chain rate limiting for oracle and RPC calls
// using a token bucket per target.
type RateLimiter struct {
	limiters   map[string]*rate.Limiter
	mu         sync.RWMutex
	rateLimit  rate.Limit
	burstLimit int
}

// NewRateLimiter creates a rate limiter with the specified rate and burst.
// ratePerSecond is requests per second, burst is the maximum burst size.
func NewRateLimiter(ratePerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters:   make(map[string]*rate.Limiter),
		rateLimit:  rate.Limit(ratePerSecond),
		burstLimit: burst,
	}
}

// DefaultRateLimiter returns a rate limiter with default settings.
// Default: 10 requests/second, burst of 20 — validation issues several
// calls per candidate (fee, balance), so the bucket is sized for bursts.
func DefaultRateLimiter() *RateLimiter {
	return NewRateLimiter(10, 20)
}

// Allow checks if a request to the target chain is allowed.
func (r *RateLimiter) Allow(target string) bool {
	return r.getLimiter(target).Allow()
}

// Wait blocks until a request to the target is allowed or the context
// is canceled.
func (r *RateLimiter) Wait(ctx context.Context, target string) error {
	return r.getLimiter(target).Wait(ctx)
}

// getLimiter returns the limiter for the given target, creating one if needed.
func (r *RateLimiter) getLimiter(target string) *rate.Limiter {
	r.mu.RLock()
	limiter, exists := r.limiters[target]
	r.mu.RUnlock()

	if exists {
		return limiter
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = r.limiters[target]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(r.rateLimit, r.burstLimit)
	r.limiters[target] = limiter
	return limiter
}
