package migrate

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// retryAttempts is the total number of tries for one backend call.
const retryAttempts = 3

// withRetry runs fn with a short exponential backoff for transient
// backend failures, honoring context cancellation between attempts.
func withRetry(ctx context.Context, logger *zap.Logger, op string, fn func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retryAttempts-1), ctx)

	attempt := 0
	return backoff.RetryNotify(fn, policy, func(err error, wait time.Duration) {
		attempt++
		logger.Warn("Retrying backend call",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err))
	})
}
