package apiclient

import (
	"context"
	"time"
)

// RetryOptions configures WithRetry.  OnRetry, when set, is invoked with the
// 1-indexed retry number before each wait.
type RetryOptions struct {
	MaxRetries int
	RetryDelay time.Duration
	OnRetry    func(attempt int, err error)
}

// DefaultRetryOptions matches the transport's defaults: three retries with a
// one-second backoff unit.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{MaxRetries: 3, RetryDelay: time.Second}
}

// WithRetry calls op until it succeeds, the error is classified as
// non-retryable, or the attempts are exhausted.  Unlike the transport retry
// inside Client, which repeats every failure, this combinator consults
// IsRetryable first: a ValidationError is executed exactly once and returned
// unmodified.  Callers wrap the highest-value mutating calls (appointment
// creation, payment verification) in it, stacking the semantic policy on
// top of the transport one.
func WithRetry[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts RetryOptions) (T, error) {
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = time.Second
	}

	var zero T
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		out, err := op(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !IsRetryable(err) || attempt == maxRetries {
			return zero, err
		}
		if opts.OnRetry != nil {
			opts.OnRetry(attempt+1, err)
		}
		if err := sleep(ctx, delay*time.Duration(attempt+1)); err != nil {
			return zero, err
		}
	}
	return zero, lastErr
}
