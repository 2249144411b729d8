package classifier

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// BreakerConfig controls when the circuit opens.
type BreakerConfig struct {
	Name                string
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// Breaker stops calling the upstream model after repeated failures so a
// batch run fails fast instead of waiting on every request timeout.
type Breaker struct {
	next Service
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next in a circuit breaker.
func NewBreaker(next Service, cfg BreakerConfig, log logrus.FieldLogger) *Breaker {
	if cfg.Name == "" {
		cfg.Name = "classifier"
	}
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellation says nothing about upstream health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if log != nil {
				log.WithFields(logrus.Fields{
					"event":   "breaker_state_change",
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				}).Warn("classifier circuit breaker changed state")
			}
		},
	})
	return &Breaker{next: next, cb: cb}
}

// State exposes the breaker state for health output.
func (b *Breaker) State() string {
	return b.cb.State().String()
}

func (b *Breaker) Classify(ctx context.Context, req Request) (Suggestion, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Classify(ctx, req)
	})
	if err != nil {
		return Suggestion{}, breakerError("classify", err)
	}
	return v.(Suggestion), nil
}

func (b *Breaker) Categorize(ctx context.Context, req Request) (CategorySuggestion, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Categorize(ctx, req)
	})
	if err != nil {
		return CategorySuggestion{}, breakerError("categorize", err)
	}
	return v.(CategorySuggestion), nil
}

func breakerError(op string, err error) error {
	if IsClassifierError(err) {
		return err
	}
	return &Error{Op: op, Err: err}
}
