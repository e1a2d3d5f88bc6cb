package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"math/rand"
	"net"
	"strings"
	"syscall"
	"time"

	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
)

// RetryConfig bounds the retries around opening a database transaction
type RetryConfig struct {
	MaxRetries    int
	RetryInterval time.Duration
	MaxInterval   time.Duration
	JitterFactor  float64 // 0.0-1.0
}

// DefaultRetryConfig returns the retry policy used by UnitOfWork.Begin
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		RetryInterval: 50 * time.Millisecond,
		MaxInterval:   time.Second,
		JitterFactor:  0.2,
	}
}

// backoff returns the wait before retry number attempt+1
func (c RetryConfig) backoff(attempt int) time.Duration {
	wait := c.RetryInterval << uint(attempt)
	if wait <= 0 || wait > c.MaxInterval {
		wait = c.MaxInterval
	}
	if c.JitterFactor > 0 {
		wait += time.Duration(float64(wait) * c.JitterFactor * rand.Float64())
	}
	return wait
}

// RetryOnTransientError runs operation up to MaxRetries times while it fails with a connection-level error.
// Any other error, including status conflicts, is returned after the first call.
func RetryOnTransientError(ctx context.Context, config RetryConfig, operation func() error, logger coreport.Logger) error {
	attempts := max(config.MaxRetries, 1)

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = operation(); err == nil || !isTransientError(err) || attempt == attempts-1 {
			return err
		}

		wait := config.backoff(attempt)
		logger.Warn("Transient database error, retrying", map[string]any{
			"attempt":     attempt + 1,
			"max_retries": attempts,
			"error":       err.Error(),
			"retry_after": wait.String(),
		})

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return err
}

var transientMessages = []string{
	"connection reset",
	"connection refused",
	"too many connections",
	"server closed",
	"broken pipe",
	"i/o timeout",
}

// isTransientError reports whether err looks like a dropped or refused connection
func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, m := range transientMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return strings.HasSuffix(msg, "eof")
}
