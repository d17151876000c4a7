package ratelimit

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/lepinkainen/cinegraph/internal/errors"
)

// Limiter wraps rate.Limiter with a name for logging/debugging.
type Limiter struct {
	limiter *rate.Limiter
	name    string
}

// New creates a new rate limiter with the given requests per second.
// The burst size equals the rate, allowing short bursts up to the rate limit.
func New(name string, requestsPerSecond int) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		name:    name,
	}
}

// Wait blocks until the rate limiter allows a request to proceed.
// A cancelled context surfaces as a plain wrapped error; a wait the
// context deadline can never accommodate surfaces as a RateLimitError.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
		}
		return errors.NewRateLimitError(fmt.Sprintf("rate limit wait for %s: %v", l.name, err))
	}
	return nil
}

// Allow reports whether a request can proceed without blocking.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Name returns the name of this rate limiter.
func (l *Limiter) Name() string {
	return l.name
}

var (
	registry   = map[string]*Limiter{}
	registryMu sync.Mutex
)

// For returns the shared limiter with the given name, creating it with the
// given rate on first use. All clients in a process share one limiter per
// remote host, so parallel entity fetches still respect the host's budget.
func For(name string, requestsPerSecond int) *Limiter {
	registryMu.Lock()
	defer registryMu.Unlock()

	if l, ok := registry[name]; ok {
		return l
	}
	l := New(name, requestsPerSecond)
	registry[name] = l
	return l
}
