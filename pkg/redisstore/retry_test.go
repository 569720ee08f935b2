package redisstore

import (
	"context"
	"errors"
	"testing"
)

func TestRetryStopsOnSuccess(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 3, func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryReturnsLastError(t *testing.T) {
	sentinel := errors.New("still failing")
	calls := 0

	err := retry(context.Background(), 3, func() error {
		calls++
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want the last attempt's error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryHonoursContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := retry(ctx, 5, func() error {
		calls++
		cancel()
		return errors.New("transient")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retries after cancel)", calls)
	}
}
