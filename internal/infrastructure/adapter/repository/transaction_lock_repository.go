package repository

import (
	"context"
	"time"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionLockRepository leases per-transaction locks from the transaction_locks table
type TransactionLockRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.TransactionLockRepository = (*TransactionLockRepository)(nil)

// NewTransactionLockRepository creates a new TransactionLockRepository instance
func NewTransactionLockRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TransactionLockRepository {
	return &TransactionLockRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// AcquireLock takes the lease for transactionID and returns its owner token, or
// fails with ErrTransactionLocked. An expired lease is taken over in the same statement.
func (r *TransactionLockRepository) AcquireLock(ctx context.Context, transactionID string, duration time.Duration) (string, error) {
	now := r.timeProvider.Now()
	expiresAt := now.Add(duration)
	owner := uuid.NewString()

	result := r.db.WithContext(ctx).Exec(`
		INSERT INTO transaction_locks (transaction_id, owner, locked_at, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (transaction_id) DO UPDATE
		SET owner = excluded.owner,
		    locked_at = excluded.locked_at,
		    expires_at = excluded.expires_at,
		    updated_at = excluded.updated_at
		WHERE transaction_locks.expires_at <= ?`,
		transactionID, owner, now, expiresAt, now, now,
		now,
	)

	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) || r.errorClassifier.IsLockError(result.Error) {
			return "", errs.ErrTransactionLocked
		}
		if isContextError(result.Error) {
			r.logger.Warn("Context ended acquiring lock", map[string]any{
				"transaction_id": transactionID,
				"error":          result.Error.Error(),
			})
			return "", result.Error
		}
		r.logger.Error("Database error acquiring lock", map[string]any{
			"transaction_id": transactionID,
			"error":          result.Error.Error(),
		})
		return "", r.errorClassifier.Wrap(result.Error, "acquire lock")
	}

	// the conflict branch matched a live lease
	if result.RowsAffected == 0 {
		r.logger.Debug("Transaction already locked", map[string]any{
			"transaction_id": transactionID,
		})
		return "", errs.ErrTransactionLocked
	}

	r.logger.Debug("Lock acquired", map[string]any{
		"transaction_id": transactionID,
		"expires_at":     expiresAt,
	})
	return owner, nil
}

// ReleaseLock deletes the lease identified by owner. A lease that expired
// and was taken over by another holder is left alone.
func (r *TransactionLockRepository) ReleaseLock(ctx context.Context, transactionID string, owner string) error {
	if owner == "" {
		r.logger.Debug("No lock held to release", map[string]any{
			"transaction_id": transactionID,
		})
		return nil
	}

	result := r.db.WithContext(ctx).
		Where("transaction_id = ? AND owner = ?", transactionID, owner).
		Delete(&model.TransactionLock{})

	if result.Error != nil {
		// the lease expires on its own
		if isContextError(result.Error) {
			r.logger.Warn("Context ended releasing lock, lock will expire automatically", map[string]any{
				"transaction_id": transactionID,
				"error":          result.Error.Error(),
			})
			return nil
		}
		r.logger.Error("Failed to release lock", map[string]any{
			"transaction_id": transactionID,
			"error":          result.Error.Error(),
		})
		return r.errorClassifier.Wrap(result.Error, "release lock")
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Lock expired before release", map[string]any{
			"transaction_id": transactionID,
		})
	}
	return nil
}

// CleanupExpiredLocks removes all expired leases
func (r *TransactionLockRepository) CleanupExpiredLocks(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", r.timeProvider.Now()).
		Delete(&model.TransactionLock{})

	if result.Error != nil {
		r.logger.Error("Failed to clean up expired locks", map[string]any{
			"error": result.Error.Error(),
		})
		return 0, r.errorClassifier.Wrap(result.Error, "cleanup locks")
	}

	if result.RowsAffected > 0 {
		r.logger.Info("Expired locks removed", map[string]any{
			"locks_removed": result.RowsAffected,
		})
	}
	return result.RowsAffected, nil
}
