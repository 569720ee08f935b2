package redisstore

import (
	"context"
	"time"
)

const retryBaseDelay = 25 * time.Millisecond

// retry runs fn up to attempts times, doubling the wait between tries.
// Status writes happen inside check batches, so the total wait stays well
// under a probe timeout even at the last attempt.
func retry(ctx context.Context, attempts int, fn func() error) error {
	delay := retryBaseDelay

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return err
}
