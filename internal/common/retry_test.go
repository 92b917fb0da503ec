package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	opts := RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
	}

	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return nil
		}, opts)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return &RetryableError{Err: errors.New("connection reset"), Retryable: true}
			}
			return nil
		}, opts)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("non-retryable error returned unwrapped", func(t *testing.T) {
		calls := 0
		cause := errors.New("target not found")
		err := WithRetry(context.Background(), func() error {
			calls++
			return &RetryableError{Err: cause, Retryable: false}
		}, opts)
		assert.Equal(t, 1, calls)
		assert.Equal(t, cause, err)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return &RetryableError{Err: errors.New("flaky"), Retryable: true}
		}, opts)
		assert.Equal(t, 3, calls)
		assert.ErrorIs(t, err, ErrMaxRetries)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, func() error {
			return &RetryableError{Err: errors.New("flaky"), Retryable: true}
		}, opts)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: false}))
	assert.False(t, IsRetryable(errors.New("plain")))
}
