package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxRetries: 3, RetryInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
}

func TestRetryOnTransientError(t *testing.T) {
	t.Run("retries connection errors", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetry(), func() error {
			calls++
			if calls < 3 {
				return errors.New("read tcp: connection reset by peer")
			}
			return nil
		}, logger.NewNoopLogger())

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry duplicate keys", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetry(), func() error {
			calls++
			return errors.New(`duplicate key value violates unique constraint "transactions_pkey"`)
		}, logger.NewNoopLogger())

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetry(), func() error {
			calls++
			return errors.New("connection refused")
		}, logger.NewNoopLogger())

		assert.Error(t, err)
		assert.Equal(t, 3, calls)
	})
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := RetryOnTransientError(ctx, RetryConfig{MaxRetries: 5, RetryInterval: time.Hour, MaxInterval: time.Hour}, func() error {
		calls++
		cancel()
		return driver.ErrBadConn
	}, logger.NewNoopLogger())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestBackoffIsCapped(t *testing.T) {
	config := RetryConfig{RetryInterval: 100 * time.Millisecond, MaxInterval: 300 * time.Millisecond}
	assert.Equal(t, 100*time.Millisecond, config.backoff(0))
	assert.Equal(t, 200*time.Millisecond, config.backoff(1))
	assert.Equal(t, 300*time.Millisecond, config.backoff(5))
	assert.Equal(t, 300*time.Millisecond, config.backoff(80), "shift overflow falls back to the cap")
}

func TestIsTransientError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"bad conn", fmt.Errorf("begin: %w", driver.ErrBadConn), true},
		{"unexpected eof", io.ErrUnexpectedEOF, true},
		{"reset", &net.OpError{Op: "read", Err: syscall.ECONNRESET}, true},
		{"message", errors.New("pq: too many connections for role"), true},
		{"constraint", errors.New("UNIQUE constraint failed: transactions.id"), false},
		{"conflict", errs.ErrStatusConflict, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isTransientError(tc.err))
		})
	}
}
