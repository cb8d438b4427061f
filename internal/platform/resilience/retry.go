package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTransient marks failures worth retrying, such as network errors,
// 429 or 5xx responses. Only errors wrapping it count against a breaker.
var ErrTransient = errors.New("transient dependency failure")

type RetryPolicy struct {
	MaxRetries int
	// Backoff returns the wait before the given retry, starting at 0.
	Backoff func(attempt int) time.Duration
}

// LinearBackoff waits step, 2*step, 3*step and so on between attempts.
func LinearBackoff(step time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return time.Duration(attempt+1) * step
	}
}

// Retry runs fn until it succeeds, returns a non-transient error or the
// policy is exhausted. The last error is returned unchanged.
func Retry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) error) error {
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	if policy.Backoff == nil {
		policy.Backoff = LinearBackoff(time.Second)
	}

	var lastErr error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, ErrTransient) || attempt == policy.MaxRetries {
			break
		}

		wait := policy.Backoff(attempt)
		if wait <= 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

// Guard protects one upstream dependency with a circuit breaker and a retry
// policy.
type Guard struct {
	name    string
	breaker *CircuitBreaker
	enabled bool
	retry   RetryPolicy
}

func NewGuard(name string, breakerCfg CircuitBreakerConfig, retry RetryPolicy) *Guard {
	return &Guard{
		name:    name,
		breaker: NewCircuitBreaker(breakerCfg),
		enabled: breakerCfg.Enabled,
		retry:   retry,
	}
}

// Do runs fn under the retry policy. When the breaker is open it fails fast
// with an error wrapping ErrCircuitOpen.
func (g *Guard) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if g.enabled {
		if err := g.breaker.Allow(); err != nil {
			return fmt.Errorf("%s: %w", g.name, err)
		}
	}

	err := Retry(ctx, g.retry, fn)
	if g.enabled {
		if err != nil && errors.Is(err, ErrTransient) {
			g.breaker.RecordFailure()
		} else {
			g.breaker.RecordSuccess()
		}
	}
	return err
}

func (g *Guard) State() CircuitState {
	return g.breaker.State()
}
