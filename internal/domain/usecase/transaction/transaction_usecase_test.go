package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/usecase"
	coremocks "github.com/amirhossein-jamali/bookkeeping-validation/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/bookkeeping-validation/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mocks struct {
	repo    *persistencemocks.MockTransactionRepository
	ids     *coremocks.MockIDGenerator
	clock   *coremocks.MockTimeProvider
	metrics *coremocks.MockMetrics
	logger  *coremocks.MockLogger
}

func setup(t *testing.T) (usecase.TransactionUseCase, *mocks) {
	m := &mocks{
		repo:    persistencemocks.NewMockTransactionRepository(t),
		ids:     coremocks.NewMockIDGenerator(t),
		clock:   coremocks.NewMockTimeProvider(t),
		metrics: coremocks.NewMockMetrics(t),
		logger:  coremocks.NewMockLogger(t),
	}
	m.clock.EXPECT().Now().Return(time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)).Maybe()
	return NewTransactionUseCase(m.repo, m.ids, m.clock, m.metrics, m.logger), m
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()
	actor := entity.Actor{ID: "c-1", Role: entity.RoleComptable}

	t.Run("Successful creation", func(t *testing.T) {
		uc, m := setup(t)
		m.ids.EXPECT().NewID().Return("0190-aaaa").Once()
		m.repo.EXPECT().Create(ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.ID == "0190-aaaa" &&
				tx.ValidationStatus == entity.StatusDraft &&
				tx.FormattedAmount() == "99.90" &&
				tx.CreatedBy == "c-1"
		})).Return("0190-aaaa", nil).Once()
		m.metrics.EXPECT().IncTransactionsCreated("income").Once()
		m.logger.EXPECT().Info(mock.Anything, mock.Anything).Once()

		tx, err := uc.Create(ctx, actor, usecase.CreateTransactionRequest{
			Date:   "2024-01-09",
			Amount: "99.9",
			Type:   "income",
			Nature: "consulting",
		})

		require.NoError(t, err)
		assert.Equal(t, "0190-aaaa", tx.ID)
		assert.Equal(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), tx.Date)
	})

	t.Run("Invalid date", func(t *testing.T) {
		uc, _ := setup(t)

		_, err := uc.Create(ctx, actor, usecase.CreateTransactionRequest{Date: "09/01/2024", Amount: "1", Type: "income"})
		assert.ErrorIs(t, err, errs.ErrInvalidDate)
	})

	t.Run("Observer cannot create", func(t *testing.T) {
		uc, m := setup(t)
		m.ids.EXPECT().NewID().Return("id").Once()

		_, err := uc.Create(ctx, entity.Actor{ID: "x", Role: entity.RoleCabinet}, usecase.CreateTransactionRequest{
			Date: "2024-01-09", Amount: "1", Type: "income",
		})
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("Repository failure", func(t *testing.T) {
		uc, m := setup(t)
		m.ids.EXPECT().NewID().Return("id").Once()
		m.repo.EXPECT().Create(ctx, mock.Anything).Return("", errs.ErrDatabaseConnection).Once()
		m.logger.EXPECT().Error(mock.Anything, mock.Anything).Once()

		_, err := uc.Create(ctx, actor, usecase.CreateTransactionRequest{Date: "2024-01-09", Amount: "1", Type: "expense"})
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

func TestGetTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		uc, m := setup(t)
		m.repo.EXPECT().Get(ctx, "tx-1").Return(&entity.Transaction{ID: "tx-1"}, nil).Once()

		tx, err := uc.Get(ctx, "tx-1")
		require.NoError(t, err)
		assert.Equal(t, "tx-1", tx.ID)
	})

	t.Run("Not found is not logged as error", func(t *testing.T) {
		uc, m := setup(t)
		m.repo.EXPECT().Get(ctx, "nope").Return(nil, errs.ErrTransactionNotFound).Once()

		_, err := uc.Get(ctx, "nope")
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("Empty id", func(t *testing.T) {
		uc, _ := setup(t)
		_, err := uc.Get(ctx, "")
		assert.ErrorIs(t, err, errs.ErrInvalidTransactionID)
	})
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("Limit is clamped", func(t *testing.T) {
		uc, m := setup(t)
		m.repo.EXPECT().List(ctx, mock.MatchedBy(func(f persistence.TransactionFilter) bool {
			return f.Limit == MaxListLimit && f.Offset == 0
		})).Return([]*entity.Transaction{}, nil).Once()

		_, err := uc.List(ctx, persistence.TransactionFilter{Limit: 10000, Offset: -3})
		require.NoError(t, err)
	})

	t.Run("Default limit", func(t *testing.T) {
		uc, m := setup(t)
		m.repo.EXPECT().List(ctx, mock.MatchedBy(func(f persistence.TransactionFilter) bool {
			return f.Limit == DefaultListLimit
		})).Return(nil, nil).Once()

		_, err := uc.List(ctx, persistence.TransactionFilter{})
		require.NoError(t, err)
	})

	t.Run("Invalid status filter", func(t *testing.T) {
		uc, _ := setup(t)
		bad := entity.ValidationStatus("pending")

		_, err := uc.List(ctx, persistence.TransactionFilter{Status: &bad})
		assert.ErrorIs(t, err, errs.ErrInvalidStatus)
	})
}

func TestDeleteDraft(t *testing.T) {
	ctx := context.Background()
	actor := entity.Actor{ID: "a-1", Role: entity.RoleAdmin}

	t.Run("Draft is deleted", func(t *testing.T) {
		uc, m := setup(t)
		m.repo.EXPECT().DeleteDraft(ctx, "tx-1").Return(true, nil).Once()
		m.logger.EXPECT().Info(mock.Anything, mock.Anything).Once()

		require.NoError(t, uc.DeleteDraft(ctx, actor, "tx-1"))
	})

	t.Run("Submitted transaction is kept", func(t *testing.T) {
		uc, m := setup(t)
		m.repo.EXPECT().DeleteDraft(ctx, "tx-1").Return(false, nil).Once()
		m.logger.EXPECT().Warn(mock.Anything, mock.Anything).Once()

		err := uc.DeleteDraft(ctx, actor, "tx-1")
		assert.ErrorIs(t, err, errs.ErrNotDraft)
	})

	t.Run("Observer is forbidden", func(t *testing.T) {
		uc, _ := setup(t)

		err := uc.DeleteDraft(ctx, entity.Actor{ID: "au", Role: entity.RoleAuditeur}, "tx-1")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}
