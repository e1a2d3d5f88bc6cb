package transaction

import (
	"context"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/usecase"
)

// Listing bounds
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// TransactionUseCase implements the transaction record business logic
type TransactionUseCase struct {
	transactionRepo persistence.TransactionRepository
	idGenerator     coreport.IDGenerator
	timeProvider    coreport.TimeProvider
	metrics         coreport.Metrics
	logger          coreport.Logger
}

// NewTransactionUseCase creates a new transaction use case instance
func NewTransactionUseCase(
	transactionRepo persistence.TransactionRepository,
	idGenerator coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	metrics coreport.Metrics,
	logger coreport.Logger,
) usecase.TransactionUseCase {
	return &TransactionUseCase{
		transactionRepo: transactionRepo,
		idGenerator:     idGenerator,
		timeProvider:    timeProvider,
		metrics:         metrics,
		logger:          logger,
	}
}

// Get returns a transaction by identifier
func (u *TransactionUseCase) Get(ctx context.Context, id string) (*entity.Transaction, error) {
	if id == "" {
		return nil, errs.ErrInvalidTransactionID
	}

	txn, err := u.transactionRepo.Get(ctx, id)
	if err != nil {
		if !errs.IsNotFoundError(err) {
			u.logger.Error("Failed to get transaction", map[string]any{
				"transaction_id": id,
				"error":          err.Error(),
			})
		}
		return nil, err
	}
	return txn, nil
}

// List returns transactions matching filter with a bounded page size
func (u *TransactionUseCase) List(ctx context.Context, filter persistence.TransactionFilter) ([]*entity.Transaction, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, errs.ErrInvalidStatus
	}
	if filter.Type != nil && !filter.Type.IsValid() {
		return nil, errs.ErrInvalidTransactionType
	}

	return u.transactionRepo.List(ctx, filter)
}
