package repository_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/repository"
	timeprovider "github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestTransactionLockRepositoryExclusion(t *testing.T) {
	manager := database.NewTestManager(t, logger.NewNoopLogger())
	clock := timeprovider.NewRealTimeProvider()
	first := repository.NewTransactionLockRepository(manager.DB(), clock, logger.NewNoopLogger())
	second := repository.NewTransactionLockRepository(manager.DB(), clock, logger.NewNoopLogger())
	ctx := context.Background()

	owner, err := first.AcquireLock(ctx, "tx-1", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, owner)

	_, err = second.AcquireLock(ctx, "tx-1", time.Minute)
	assert.ErrorIs(t, err, errs.ErrTransactionLocked)
	assert.ErrorIs(t, err, errs.ErrStatusConflict)

	// other transactions are independent
	other, err := second.AcquireLock(ctx, "tx-2", time.Minute)
	require.NoError(t, err)
	assert.NotEqual(t, owner, other)

	// releasing with a token that does not own the lease is a no-op
	require.NoError(t, second.ReleaseLock(ctx, "tx-1", other))
	require.NoError(t, second.ReleaseLock(ctx, "tx-1", ""))
	_, err = second.AcquireLock(ctx, "tx-1", time.Minute)
	assert.ErrorIs(t, err, errs.ErrTransactionLocked)

	require.NoError(t, first.ReleaseLock(ctx, "tx-1", owner))
	_, err = second.AcquireLock(ctx, "tx-1", time.Minute)
	require.NoError(t, err)
}

func TestTransactionLockRepositoryTakesOverExpiredLease(t *testing.T) {
	manager := database.NewTestManager(t, logger.NewNoopLogger())
	clock := timeprovider.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	repo := repository.NewTransactionLockRepository(manager.DB(), clock, logger.NewNoopLogger())
	ctx := context.Background()

	stale, err := repo.AcquireLock(ctx, "tx-1", time.Second)
	require.NoError(t, err)

	clock.Advance(time.Second)
	fresh, err := repo.AcquireLock(ctx, "tx-1", time.Minute)
	require.NoError(t, err)
	require.NotEqual(t, stale, fresh)

	// the expired holder must not remove the successor's lease
	require.NoError(t, repo.ReleaseLock(ctx, "tx-1", stale))
	_, err = repo.AcquireLock(ctx, "tx-1", time.Minute)
	assert.ErrorIs(t, err, errs.ErrTransactionLocked)

	require.NoError(t, repo.ReleaseLock(ctx, "tx-1", fresh))
	_, err = repo.AcquireLock(ctx, "tx-1", time.Minute)
	assert.NoError(t, err)
}

func TestCleanupExpiredLocks(t *testing.T) {
	manager := database.NewTestManager(t, logger.NewNoopLogger())
	clock := timeprovider.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	repo := repository.NewTransactionLockRepository(manager.DB(), clock, logger.NewNoopLogger())
	ctx := context.Background()

	_, err := repo.AcquireLock(ctx, "tx-old", time.Millisecond)
	require.NoError(t, err)
	_, err = repo.AcquireLock(ctx, "tx-live", time.Minute)
	require.NoError(t, err)
	clock.Advance(10 * time.Millisecond)

	removed, err := repo.CleanupExpiredLocks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func newMockLockRepo(t *testing.T) (*repository.TransactionLockRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return repository.NewTransactionLockRepository(db, timeprovider.NewRealTimeProvider(), logger.NewNoopLogger()), mock
}

func TestAcquireLockMapsDriverResults(t *testing.T) {
	anyArgs := []driver.Value{
		sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
	}

	t.Run("live lease leaves no rows affected", func(t *testing.T) {
		repo, mock := newMockLockRepo(t)
		mock.ExpectExec("INSERT INTO transaction_locks").WithArgs(anyArgs...).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.AcquireLock(context.Background(), "tx-1", time.Second)
		assert.ErrorIs(t, err, errs.ErrTransactionLocked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("connection failure", func(t *testing.T) {
		repo, mock := newMockLockRepo(t)
		mock.ExpectExec("INSERT INTO transaction_locks").WithArgs(anyArgs...).
			WillReturnError(errors.New("dial tcp: connection refused"))

		_, err := repo.AcquireLock(context.Background(), "tx-1", time.Second)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("serialization failure is a conflict", func(t *testing.T) {
		repo, mock := newMockLockRepo(t)
		mock.ExpectExec("INSERT INTO transaction_locks").WithArgs(anyArgs...).
			WillReturnError(errors.New("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)"))

		_, err := repo.AcquireLock(context.Background(), "tx-1", time.Second)
		assert.ErrorIs(t, err, errs.ErrStatusConflict)
	})

	t.Run("release deletes only the owned lease", func(t *testing.T) {
		repo, mock := newMockLockRepo(t)
		mock.ExpectExec("INSERT INTO transaction_locks").WithArgs(anyArgs...).
			WillReturnResult(sqlmock.NewResult(0, 1))
		owner, err := repo.AcquireLock(context.Background(), "tx-1", time.Second)
		require.NoError(t, err)

		mock.ExpectExec(`DELETE FROM "transaction_locks" WHERE transaction_id = \$1 AND owner = \$2`).
			WithArgs("tx-1", owner).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.ReleaseLock(context.Background(), "tx-1", owner))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
