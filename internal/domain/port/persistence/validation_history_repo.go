package persistence

import (
	"context"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
)

// ValidationHistoryRepository is the append-only ledger of accepted transitions
type ValidationHistoryRepository interface {
	// Append writes a record once and assigns its insertion Sequence.
	// Records are never updated or deleted.
	Append(ctx context.Context, record *entity.ValidationRecord) error

	// ListFor returns the records of a transaction ordered by timestamp ascending,
	// ties broken by insertion order
	ListFor(ctx context.Context, transactionID string) ([]*entity.ValidationRecord, error)
}
