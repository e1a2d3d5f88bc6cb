package persistence

import (
	"context"
	"time"
)

// TransactionLockRepository provides per-transaction mutual exclusion for transitions
type TransactionLockRepository interface {
	// AcquireLock takes the lock for transactionID, held at most for duration,
	// and returns the owner token identifying this lease.
	// It does not wait: contention fails immediately with ErrTransactionLocked.
	AcquireLock(ctx context.Context, transactionID string, duration time.Duration) (string, error)

	// ReleaseLock releases the lease identified by owner. A lease that expired
	// and was taken over by another holder is left alone.
	ReleaseLock(ctx context.Context, transactionID string, owner string) error
}
