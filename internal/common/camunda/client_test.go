package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	cfg := &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), cfg, IsRetryableZeebeError, func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("rpc error: code = Unavailable")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), cfg, IsRetryableZeebeError, func(context.Context) error {
			calls++
			return errors.New("permission denied")
		})
		assert.EqualError(t, err, "permission denied")
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), cfg, IsRetryableZeebeError, func(context.Context) error {
			calls++
			return errors.New("connection refused")
		})
		assert.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		slow := &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}

		err := Retry(ctx, slow, IsRetryableZeebeError, func(context.Context) error {
			return errors.New("deadline exceeded")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, IsRetryableZeebeError(errors.New("dial tcp: connection refused")))
	assert.True(t, IsRetryableZeebeError(errors.New("context deadline exceeded")))
	assert.False(t, IsRetryableZeebeError(errors.New("NOT_FOUND: process")))
}
