// Package retry provides a small context-aware retry helper with
// exponential backoff for calls to external providers.
package retry

import (
	"context"
	"time"
)

// Policy controls retry behavior.
type Policy struct {
	Attempts  int           // total attempts, including the first call
	BaseDelay time.Duration // delay before the second attempt; doubles each retry
	MaxDelay  time.Duration // cap on a single backoff sleep; 0 means no cap
}

// Do invokes fn up to p.Attempts times, sleeping BaseDelay*2^n between
// attempts. It returns nil as soon as fn succeeds. If all attempts fail,
// the last error is returned. Context cancellation aborts the backoff wait.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := p.BaseDelay

	for i := 0; i < attempts; i++ {
		if i > 0 {
			if err := sleep(ctx, delay); err != nil {
				return err
			}
			delay *= 2
			if p.MaxDelay > 0 && delay > p.MaxDelay {
				delay = p.MaxDelay
			}
		}

		if err := fn(ctx); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	return lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
