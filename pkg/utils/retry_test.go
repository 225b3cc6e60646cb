package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnavailable = errors.New("connection refused")

func TestRetryWithBackoff_SucceedsFirstTime(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), clockwork.NewFakeClock(), DefaultRetryConfig, func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_GivesUp(t *testing.T) {
	clock := clockwork.NewFakeClock()
	config := RetryConfig{MaxAttempts: 3, InitialDelay: time.Second, MaxDelay: 90 * time.Second, Multiplier: 2.0}

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- RetryWithBackoff(context.Background(), clock, config, func() error {
			calls.Add(1)
			return errUnavailable
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Second)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(2 * time.Second)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, errUnavailable)
		assert.Contains(t, err.Error(), "giving up after 3 attempts")
	case <-time.After(5 * time.Second):
		t.Fatal("retry did not finish")
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetryWithBackoff_RecoversAfterFailure(t *testing.T) {
	clock := clockwork.NewFakeClock()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- RetryWithBackoff(context.Background(), clock, DefaultRetryConfig, func() error {
			if calls.Add(1) == 1 {
				return errUnavailable
			}
			return nil
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(DefaultRetryConfig.InitialDelay)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("retry did not finish")
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, clockwork.NewFakeClock(), DefaultRetryConfig, func() error {
		return errUnavailable
	})

	assert.ErrorIs(t, err, context.Canceled)
}
