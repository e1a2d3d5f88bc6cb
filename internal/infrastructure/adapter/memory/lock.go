package memory

import (
	"context"
	"sync"
	"time"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
	"github.com/google/uuid"
)

type lease struct {
	owner     string
	expiresAt time.Time
}

// LockRepository provides per-transaction leases within one process
type LockRepository struct {
	mu           sync.Mutex
	leases       map[string]lease
	timeProvider coreport.TimeProvider
}

var _ persistence.TransactionLockRepository = (*LockRepository)(nil)

// NewLockRepository creates an empty lock table
func NewLockRepository(timeProvider coreport.TimeProvider) *LockRepository {
	return &LockRepository{
		leases:       map[string]lease{},
		timeProvider: timeProvider,
	}
}

// AcquireLock takes the lease or fails with ErrTransactionLocked while a live lease exists
func (l *LockRepository) AcquireLock(ctx context.Context, transactionID string, duration time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.timeProvider.Now()
	if held, ok := l.leases[transactionID]; ok && now.Before(held.expiresAt) {
		return "", errs.ErrTransactionLocked
	}

	owner := uuid.NewString()
	l.leases[transactionID] = lease{owner: owner, expiresAt: now.Add(duration)}
	return owner, nil
}

// ReleaseLock drops the lease if owner still holds it
func (l *LockRepository) ReleaseLock(_ context.Context, transactionID string, owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, ok := l.leases[transactionID]; ok && held.owner == owner {
		delete(l.leases, transactionID)
	}
	return nil
}
