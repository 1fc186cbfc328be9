package messaging

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerSettings control when BreakerPublisher stops calling the broker.
type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker once exceeded.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before letting a probe through.
	OpenTimeout time.Duration
}

// BreakerPublisher wraps a Publisher in a circuit breaker.
// While the breaker is open Publish fails fast with gobreaker.ErrOpenState.
type BreakerPublisher struct {
	next Publisher
	cb   *gobreaker.CircuitBreaker[struct{}]
}

var _ Publisher = (*BreakerPublisher)(nil)

func NewBreakerPublisher(name string, next Publisher, settings BreakerSettings) *BreakerPublisher {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > settings.ConsecutiveFailures
		},
	}
	return &BreakerPublisher{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[struct{}](st),
	}
}

func (p *BreakerPublisher) Publish(ctx context.Context, event Event) error {
	_, err := p.cb.Execute(func() (struct{}, error) {
		return struct{}{}, p.next.Publish(ctx, event)
	})
	return err
}

// State reports the current breaker state.
func (p *BreakerPublisher) State() gobreaker.State {
	return p.cb.State()
}
