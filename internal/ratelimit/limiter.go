// Package ratelimit wraps golang.org/x/time/rate with named limiters.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter with a name for logging/debugging.
type Limiter struct {
	limiter *rate.Limiter
	name    string
}

// NewWindow creates a limiter admitting at most requests in any window.
// Requests are spaced window/requests apart with no burst, so
// NewWindow("gcd", 10, 10*time.Second) admits one request per second.
func NewWindow(name string, requests int, window time.Duration) *Limiter {
	if requests <= 0 || window <= 0 {
		return Unlimited(name)
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Every(window/time.Duration(requests)), 1),
		name:    name,
	}
}

// Unlimited creates a limiter that never delays.
func Unlimited(name string) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Inf, 0),
		name:    name,
	}
}

// Wait blocks until the rate limiter allows a request to proceed.
// Returns an error if the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
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
