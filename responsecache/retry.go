package responsecache

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-response-cache/response"
)

// RetryConfig controls how a failed operation is re-attempted.
type RetryConfig struct {
	// MaxAttempts is the total number of invocations, including the first.
	// Values below 1 behave as a single attempt. Default: 3
	MaxAttempts int

	// InitialDelay is the delay before the first retry. Default: 100ms
	InitialDelay time.Duration

	// MaxDelay caps the growing delay between attempts. Default: 1s
	MaxDelay time.Duration

	// BackoffFactor multiplies the delay after each retry. Default: 2.0
	BackoffFactor float64

	// RetryIf decides whether a failed attempt should be retried. It
	// receives the failure variant when the operation returned one, and the
	// operation error when the call failed outright; exactly one of the two
	// is set. A nil RetryIf retries every failure.
	RetryIf func(failure response.Failure, err error) bool
}

// DefaultRetryConfig returns the default retry parameters.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      time.Second,
		BackoffFactor: 2.0,
	}
}

// Validate checks whether the configuration values are valid. The numeric
// rules use validation.By because ozzo's threshold rules skip zero values.
func (c RetryConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MaxAttempts, validation.By(atLeastOneAttempt)),
		validation.Field(&c.InitialDelay, validation.By(nonNegativeDuration)),
		validation.Field(&c.MaxDelay, validation.By(nonNegativeDuration)),
		validation.Field(&c.BackoffFactor, validation.By(factorAtLeastOne)),
	)
}

func atLeastOneAttempt(value any) error {
	n, ok := value.(int)
	if !ok {
		return fmt.Errorf("must be an int")
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

func factorAtLeastOne(value any) error {
	f, ok := value.(float64)
	if !ok {
		return fmt.Errorf("must be a float")
	}
	if f < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

func nonNegativeDuration(value any) error {
	d, ok := value.(time.Duration)
	if !ok {
		return fmt.Errorf("must be a duration")
	}
	if d < 0 {
		return fmt.Errorf("must be non-negative")
	}
	return nil
}

// normalized fills zero-valued fields with defaults so a partially
// constructed config behaves predictably.
func (c RetryConfig) normalized() RetryConfig {
	def := DefaultRetryConfig()
	if c.MaxAttempts == 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = def.InitialDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = def.MaxDelay
	}
	if c.BackoffFactor < 1 {
		c.BackoffFactor = def.BackoffFactor
	}
	return c
}

func (c RetryConfig) shouldRetry(f response.Failure, err error) bool {
	if c.RetryIf == nil {
		return true
	}
	return c.RetryIf(f, err)
}

// ExecuteWithRetry invokes op up to cfg.MaxAttempts times, sleeping an
// exponentially growing delay between attempts. The result of the final
// attempt is returned verbatim, even when it still signals an error; the
// engine introduces no error kind of its own. Delay elapses only between
// attempts, never after the final one.
//
// Cancellation aborts immediately: a done context during the operation or
// the backoff delay returns the context error and discards any outcome.
func ExecuteWithRetry[T any](ctx context.Context, cfg RetryConfig, op Operation[T]) (response.Outcome[T], error) {
	cfg = cfg.normalized()
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := NewBackoff(cfg.InitialDelay, cfg.MaxDelay, cfg.BackoffFactor)

	var out response.Outcome[T]
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if serr := sleep(ctx, backoff.ForAttempt(attempt-1)); serr != nil {
				return nil, serr
			}
		}

		out, err = op(ctx)
		// An outcome computed around a cancellation is discarded; the
		// caller gets the context error instead.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			if attempt == attempts-1 || !cfg.shouldRetry(nil, err) {
				break
			}
			continue
		}

		failure, failed := response.AsFailure[T](out)
		if !failed {
			return out, nil
		}
		if attempt == attempts-1 || !cfg.shouldRetry(failure, nil) {
			break
		}
	}
	return out, err
}
