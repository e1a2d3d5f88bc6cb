package persistence

import (
	"context"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
)

// TransactionFilter narrows a transaction listing
type TransactionFilter struct {
	Status    *entity.ValidationStatus
	Type      *entity.TransactionType
	CreatedBy string
	Limit     int
	Offset    int
}

// TransactionRepository defines essential methods to interact with transaction records
type TransactionRepository interface {
	// Get retrieves a transaction by its identifier
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Get(ctx context.Context, id string) (*entity.Transaction, error)

	// Create saves a new transaction and returns its identifier
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If transaction with the same ID already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) (string, error)

	// UpdateStatus sets the validation status to next only if the stored status
	// still equals expected at write time. It returns false without error when the
	// guard fails. A missing transaction is also reported as false.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	UpdateStatus(ctx context.Context, id string, expected, next entity.ValidationStatus) (bool, error)

	// List returns transactions matching filter, newest first
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// DeleteDraft removes a transaction only while it is still a draft.
	// It returns false without error when the transaction left draft.
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	DeleteDraft(ctx context.Context, id string) (bool, error)
}
