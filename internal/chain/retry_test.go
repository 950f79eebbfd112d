package chain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsAfterTransientFailure(t *testing.T) {
	t.Parallel()

	attempts := 0
	cfg := RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	result, err := RetryWithConfig(context.Background(), cfg, func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", ErrRetryable
		}
		return "0xhash", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "0xhash", result)
	assert.Equal(t, 3, attempts)
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	t.Parallel()

	permanent := errors.New("invalid payload")
	attempts := 0
	cfg := RetryConfig{MaxAttempts: 4, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}

	_, err := RetryWithConfig(context.Background(), cfg, func() (int, error) {
		attempts++
		return 0, permanent
	})

	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	t.Parallel()

	cfg := RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}

	_, err := RetryWithConfig(context.Background(), cfg, func() (int, error) {
		return 0, ErrRateLimited
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestRetryRespectsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cfg := RetryConfig{MaxAttempts: 10, BaseDelay: 50 * time.Millisecond, MaxDelay: time.Second}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := RetryWithConfig(ctx, cfg, func() (int, error) {
		return 0, ErrRetryable
	})

	require.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRetryable(ErrRetryable))
	assert.True(t, IsRetryable(ErrRateLimited))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(errors.New("permanent")))
}
