package database

import (
	"context"
	"database/sql"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
)

// poolSaturation is the in-use share of MaxOpenConnections that triggers a warning
const poolSaturation = 0.8

// PoolWatcher pings the database on an interval and logs health changes and pool saturation
type PoolWatcher struct {
	sqlDB    *sql.DB
	logger   coreport.Logger
	timeout  time.Duration
	mu       sync.RWMutex
	healthy  bool
	failures int
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewPoolWatcher creates a watcher over sqlDB. timeout bounds each ping.
func NewPoolWatcher(sqlDB *sql.DB, logger coreport.Logger, timeout time.Duration) *PoolWatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PoolWatcher{
		sqlDB:   sqlDB,
		logger:  logger,
		timeout: timeout,
		healthy: true,
	}
}

// Start runs one check synchronously, then keeps checking every interval until Stop
func (w *PoolWatcher) Start(interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})

	w.check(ctx)

	go func() {
		defer close(w.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.check(ctx)
			}
		}
	}()
}

// Stop ends the background loop and waits for it to exit
func (w *PoolWatcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
	w.cancel = nil
}

// Healthy reports whether the last ping succeeded
func (w *PoolWatcher) Healthy() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.healthy
}

// Stats returns the live pool statistics
func (w *PoolWatcher) Stats() sql.DBStats {
	return w.sqlDB.Stats()
}

func (w *PoolWatcher) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, w.timeout)
	err := w.sqlDB.PingContext(pingCtx)
	cancel()
	if ctx.Err() != nil {
		return
	}

	w.mu.Lock()
	wasHealthy := w.healthy
	w.healthy = err == nil
	if err != nil {
		w.failures++
	}
	failures := w.failures
	if err == nil {
		w.failures = 0
	}
	w.mu.Unlock()

	switch {
	case err != nil && wasHealthy:
		w.logger.Error("Database became unreachable", map[string]any{"error": err.Error()})
	case err != nil:
		w.logger.Debug("Database still unreachable", map[string]any{
			"error":    err.Error(),
			"failures": failures,
		})
	case !wasHealthy:
		w.logger.Info("Database reachable again", map[string]any{"failed_checks": failures})
	}

	stats := w.sqlDB.Stats()
	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > float64(stats.MaxOpenConnections)*poolSaturation {
		w.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}
}
