package llm

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy defines how failed requests are retried.
type RetryPolicy struct {
	MaxRetries        int
	BaseDelay         float64 // seconds
	MaxDelay          float64 // seconds
	BackoffMultiplier float64
	Jitter            bool
}

// DefaultRetryPolicy returns the standard retry policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:        2,
		BaseDelay:         1.0,
		MaxDelay:          60.0,
		BackoffMultiplier: 2.0,
		Jitter:            true,
	}
}

// Delay computes the backoff delay before the given retry attempt
// (0-indexed).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	delay := p.BaseDelay * math.Pow(p.BackoffMultiplier, float64(attempt))
	if delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	if p.Jitter {
		delay = delay * (0.5 + rand.Float64())
	}
	return time.Duration(delay * float64(time.Second))
}

// Retry executes fn, retrying retryable errors according to the policy.
// A RateLimitError carrying a RetryAfter hint overrides the computed
// backoff for that attempt.
func Retry[T any](ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := policy.Delay(attempt - 1)
			if rle, ok := lastErr.(*RateLimitError); ok && rle.RetryAfter != nil {
				delay = time.Duration(*rle.RetryAfter * float64(time.Second))
			}
			select {
			case <-ctx.Done():
				return zero, &AbortError{ClientError{Message: "operation cancelled during retry wait", Cause: ctx.Err()}}
			case <-time.After(delay):
			}
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}
	}

	return zero, lastErr
}
