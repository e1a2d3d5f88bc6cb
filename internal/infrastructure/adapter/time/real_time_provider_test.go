package time

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
)

func TestRealTimeProvider(t *testing.T) {
	p := NewRealTimeProvider()

	now := p.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.GreaterOrEqual(t, p.Since(now), core.Duration(0))

	ctx, cancel := p.WithTimeout(context.Background(), core.Millisecond)
	defer cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.FixedZone("CET", 3600))
	c := NewManualClock(start)

	assert.Equal(t, time.UTC, c.Now().Location())
	assert.True(t, c.Now().Equal(start))

	c.Advance(90 * time.Second)
	assert.Equal(t, int64(90_000), c.Since(start).Milliseconds())

	c.Set(start)
	assert.Equal(t, core.Duration(0), c.Since(start))
}
