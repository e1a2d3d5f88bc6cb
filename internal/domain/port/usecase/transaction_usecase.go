package usecase

import (
	"context"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
)

// CreateTransactionRequest represents an incoming bookkeeping entry
type CreateTransactionRequest struct {
	Date          string
	Amount        string
	Type          string
	Nature        string
	Description   string
	DepartmentID  *string
	ProjectID     *string
	AccountID     *string
	StakeholderID *string
	AssociateID   *string
}

// TransactionUseCase defines methods for transaction record operations
type TransactionUseCase interface {
	// Create records a new draft transaction
	Create(ctx context.Context, actor entity.Actor, req CreateTransactionRequest) (*entity.Transaction, error)

	// Get retrieves a transaction
	Get(ctx context.Context, id string) (*entity.Transaction, error)

	// List returns transactions matching filter
	List(ctx context.Context, filter persistence.TransactionFilter) ([]*entity.Transaction, error)

	// DeleteDraft removes a transaction that never left draft
	DeleteDraft(ctx context.Context, actor entity.Actor, id string) error
}
