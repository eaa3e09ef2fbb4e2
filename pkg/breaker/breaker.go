// Package breaker wraps sony/gobreaker around the Portal Client's outbound
// calls: after repeated transient failures,
// trip open and fail fast instead of piling up retries against a dead
// upstream. The AI adapter's calls do not go through a breaker.
package breaker

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the fields a breaker needs: how many consecutive failures
// trip it, and how long it stays open before allowing a probe request.
type Config struct {
	Name             string
	MaxRequests      uint32 // allowed requests while half-open
	Interval         time.Duration
	Timeout          time.Duration // how long the breaker stays open
	ConsecutiveTrips uint32
}

// Breaker wraps gobreaker.CircuitBreaker with a context-aware Execute.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

func New(cfg Config) *Breaker {
	st := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveTrips
		},
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(st)}
}

// Execute runs fn through the breaker. ctx cancellation is the caller's
// responsibility — fn must itself respect ctx.
func (b *Breaker) Execute(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	return b.cb.Execute(func() (any, error) {
		return fn(ctx)
	})
}

// State reports the breaker's current state, for health checks.
func (b *Breaker) State() string {
	return b.cb.State().String()
}
