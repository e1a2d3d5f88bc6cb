package time

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
)

// RealTimeProvider reads the wall clock in UTC
type RealTimeProvider struct{}

// NewRealTimeProvider returns the wall clock as a core.TimeProvider
func NewRealTimeProvider() core.TimeProvider {
	return RealTimeProvider{}
}

// Now returns the current UTC time
func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// Since returns the elapsed wall time since t
func (RealTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}

// WithTimeout wraps context.WithTimeout
func (RealTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
