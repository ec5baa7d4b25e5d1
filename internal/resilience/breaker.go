// Package resilience wraps a car's controller connection attempts in a
// circuit breaker, so a persistently unreachable controller degrades to
// a slow, bounded retry instead of a dial-storm.
package resilience

import (
	"time"

	"github.com/sony/gobreaker"
)

// Dialer is the shape of a connect attempt the breaker guards.
type Dialer func() (any, error)

// Breaker gates repeated dial attempts behind the standard
// closed/open/half-open state machine.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewDialBreaker returns a breaker tuned for an intermittent TCP peer:
// it opens after 3 consecutive failures and allows one trial request
// after a 10s cooldown.
func NewDialBreaker(name string) *Breaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Try runs dial through the breaker, returning gobreaker.ErrOpenState
// without attempting the dial if the breaker is currently open.
func (b *Breaker) Try(dial Dialer) (any, error) {
	return b.cb.Execute(func() (any, error) {
		return dial()
	})
}

// State reports the breaker's current state, for logging/metrics.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
