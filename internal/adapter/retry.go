package adapter

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

// WithRetry retries failed fetches up to attempts times in total, waiting delay
// between attempts. Parse errors and unsupported courses are not retried.
// attempts <= 1 returns a unchanged.
func WithRetry(a Adapter, attempts int, delay time.Duration) Adapter {
	if attempts <= 1 {
		return a
	}
	return &retryingAdapter{Adapter: a, attempts: attempts, delay: delay}
}

type retryingAdapter struct {
	Adapter
	attempts int
	delay    time.Duration
}

func (r *retryingAdapter) FetchRaw(ctx context.Context, course teetime.Course, dates teetime.DateRange) ([]teetime.RawSlot, error) {
	var slots []teetime.RawSlot
	op := func() error {
		s, err := r.Adapter.FetchRaw(ctx, course, dates)
		if err != nil {
			if _, ok := AsParseError(err); ok || IsUnsupported(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		slots = s
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.delay), uint64(r.attempts-1)),
		ctx,
	)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return slots, nil
}
