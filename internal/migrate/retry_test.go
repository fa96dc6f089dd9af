package migrate

import (
	"context"
	"errors"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

func TestWithRetry(t *testing.T) {
	t.Run("immediate success", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), zap.NewNop(), "op", func() error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("withRetry() error = %v", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("transient failures retried", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), zap.NewNop(), "op", func() error {
			calls++
			if calls < 3 {
				return errors.New("flaky")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("withRetry() error = %v", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("permanent failure stops immediately", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := withRetry(context.Background(), zap.NewNop(), "op", func() error {
			calls++
			return backoff.Permanent(boom)
		})
		if !errors.Is(err, boom) {
			t.Fatalf("error = %v, want boom", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), zap.NewNop(), "op", func() error {
			calls++
			return errors.New("always")
		})
		if err == nil {
			t.Fatal("expected an error")
		}
		if calls != retryAttempts {
			t.Errorf("calls = %d, want %d", calls, retryAttempts)
		}
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := withRetry(ctx, zap.NewNop(), "op", func() error {
			return errors.New("flaky")
		})
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}
