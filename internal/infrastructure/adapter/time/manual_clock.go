package time

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
)

// ManualClock is a TimeProvider that only moves when told to.
// Timeouts it hands out still run on the wall clock.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

var _ core.TimeProvider = (*ManualClock)(nil)

// NewManualClock starts the clock at start, converted to UTC
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start.UTC()}
}

// Now returns the current manual time
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Since measures against the manual time
func (c *ManualClock) Since(t time.Time) core.Duration {
	return core.Duration(c.Now().Sub(t))
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set jumps the clock to t
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.UTC()
}

// WithTimeout delegates to context.WithTimeout
func (c *ManualClock) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
