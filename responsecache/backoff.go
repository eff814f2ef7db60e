package responsecache

import (
	"context"
	"math"
	"time"
)

// Backoff computes exponential inter-attempt delays with a cap.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
	Factor  float64
}

// NewBackoff returns a Backoff initialized with the supplied parameters,
// substituting defaults for out-of-range values.
func NewBackoff(initial, max time.Duration, factor float64) Backoff {
	if initial <= 0 {
		initial = 100 * time.Millisecond
	}
	if max <= 0 {
		max = time.Second
	}
	if factor < 1 {
		factor = 2.0
	}
	return Backoff{Initial: initial, Max: max, Factor: factor}
}

// ForAttempt returns the delay inserted after the given attempt (0-indexed):
// Initial*Factor^attempt, never exceeding Max. With the defaults the
// sequence is 100ms, 200ms, 400ms, 800ms, 1s, 1s, ...
func (b Backoff) ForAttempt(attempt int) time.Duration {
	if attempt <= 0 {
		if b.Initial > b.Max {
			return b.Max
		}
		return b.Initial
	}

	delay := float64(b.Initial) * math.Pow(b.Factor, float64(attempt))
	if delay <= 0 || delay > float64(b.Max) {
		return b.Max
	}
	return time.Duration(delay)
}

// sleep waits for d or until the context is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
