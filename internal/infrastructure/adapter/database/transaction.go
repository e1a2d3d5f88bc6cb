package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// txKey carries the open *gorm.DB transaction in a context
type txKey struct{}

var errNoTransaction = errors.New("no database transaction in context")

// UnitOfWork runs a transition's status update and history append in one SQL transaction
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	errorMapper  *ErrorMapper
	retryConfig  RetryConfig
}

var _ persistence.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork creates a UnitOfWork over db
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		errorMapper:  NewErrorMapper(),
		retryConfig:  DefaultRetryConfig(),
	}
}

func txFrom(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

// Begin opens a transaction, retrying dropped connections. PostgreSQL transactions run SERIALIZABLE.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	var opts []*sql.TxOptions
	if u.db.Dialector.Name() == DriverPostgres {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelSerializable})
	}

	var tx *gorm.DB
	err := RetryOnTransientError(ctx, u.retryConfig, func() error {
		tx = u.db.WithContext(ctx).Begin(opts...)
		return tx.Error
	}, u.logger)
	if err != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": err.Error()})
		return ctx, fmt.Errorf("begin: %w", u.errorMapper.MapError(err, "begin"))
	}

	return context.WithValue(ctx, txKey{}, tx), nil
}

// Commit commits the transaction carried by ctx. A serialization failure surfaces as a status conflict.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := txFrom(ctx)
	if !ok {
		return errNoTransaction
	}
	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("commit: %w", u.errorMapper.MapError(err, "commit"))
	}
	return nil
}

// Rollback aborts the transaction carried by ctx. A transaction that already finished is left alone.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := txFrom(ctx)
	if !ok {
		return errNoTransaction
	}

	err := tx.Rollback().Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrTxDone),
		errors.Is(err, gorm.ErrInvalidTransaction),
		strings.Contains(err.Error(), "already been committed or rolled back"):
		return nil
	default:
		u.logger.Error("Failed to rollback transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("rollback: %w", err)
	}
}

// GetTransactionRepository returns a transaction repository bound to ctx's transaction, if any
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.conn(ctx), u.timeProvider, u.logger)
}

// GetHistoryRepository returns a history repository bound to ctx's transaction, if any
func (u *UnitOfWork) GetHistoryRepository(ctx context.Context) persistence.ValidationHistoryRepository {
	return repository.NewHistoryRepository(u.conn(ctx), u.logger)
}

func (u *UnitOfWork) conn(ctx context.Context) *gorm.DB {
	if tx, ok := txFrom(ctx); ok {
		return tx.WithContext(ctx)
	}
	return u.db.WithContext(ctx)
}
