// Package ratelimit wraps golang.org/x/time/rate around the Portal Client's
// outbound requests and any other component that must pace calls to a shared
// upstream.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces calls to at most rps sustained, bursting up to burst.
type Limiter struct {
	rl *rate.Limiter
}

func New(rps float64, burst int) *Limiter {
	return &Limiter{rl: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Wait blocks until a token is available or ctx is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.rl.Wait(ctx)
}

// Allow reports whether a call may proceed immediately, without blocking.
func (l *Limiter) Allow() bool {
	return l.rl.Allow()
}

// Semaphore bounds concurrency (not request rate) — used alongside Limiter
// to cap the Portal Client at MaxConcurrent in-flight requests.
type Semaphore struct {
	tokens chan struct{}
}

func NewSemaphore(n int) *Semaphore {
	return &Semaphore{tokens: make(chan struct{}, n)}
}

// Acquire blocks until a slot is free or ctx is cancelled.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.tokens <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Semaphore) Release() {
	<-s.tokens
}
