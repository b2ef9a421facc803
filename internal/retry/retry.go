// Package retry provides the single backoff policy shared by the
// paginated reader, the batch writer and schema setup.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"tradebot-pipeline/internal/observability"
)

// Default policy values: 3 attempts with 5s, 10s, 20s waits between them.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 5 * time.Second
	DefaultMaxDelay    = 40 * time.Second
	DefaultMultiplier  = 2.0
)

// Exhausted marks an error as a transient failure promoted to fatal
// after all attempts were spent.
var Exhausted = errors.New("retry attempts exhausted")

// Policy is a reusable retry schedule. The zero value is not usable;
// construct with NewPolicy.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64

	// Retryable decides whether an error is transient. When nil every
	// error is treated as transient.
	Retryable func(error) bool

	log *logrus.Logger
}

// NewPolicy returns a Policy with default schedule values.
func NewPolicy(log *logrus.Logger) Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
		Multiplier:  DefaultMultiplier,
		log:         log,
	}
}

// Do runs fn until it succeeds, returns a non-retryable error, the
// context is cancelled, or MaxAttempts is spent. op names the
// operation for logging. Exhaustion returns an error matching
// Exhausted that wraps the last failure.
func (p Policy) Do(ctx context.Context, op string, fn func() error) error {
	delay := p.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if attempt > 1 {
			observability.RecordRetry(op)
			if p.log != nil {
				p.log.WithFields(logrus.Fields{
					"operation": op,
					"attempt":   attempt,
					"delay":     delay.String(),
				}).Warn("retrying after transient failure")
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * p.Multiplier)
			if delay > p.MaxDelay {
				delay = p.MaxDelay
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		lastErr = err
		if p.log != nil {
			p.log.WithFields(logrus.Fields{
				"operation": op,
				"attempt":   attempt,
			}).WithError(err).Warn("operation failed")
		}
	}

	return fmt.Errorf("%w: %s: %w", Exhausted, op, lastErr)
}
