package memory

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
)

// HistoryRepository is the append-only ledger kept in a Store
type HistoryRepository struct {
	store *Store
	unit  *unit
}

var _ persistence.ValidationHistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a repository appending straight to store
func NewHistoryRepository(store *Store) *HistoryRepository {
	return &HistoryRepository{store: store}
}

// Append adds record. Inside a unit the sequence is assigned at commit.
func (r *HistoryRepository) Append(ctx context.Context, record *entity.ValidationRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("nil validation record")
	}

	if r.unit != nil {
		r.unit.mu.Lock()
		defer r.unit.mu.Unlock()
		if r.unit.done {
			return errNoUnit
		}
		r.unit.records = append(r.unit.records, record)
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.seq++
	record.Sequence = r.store.seq
	r.store.records = append(r.store.records, *cloneRecord(*record))
	return nil
}

// ListFor returns committed records of transactionID, followed in order by any
// staged in the current unit
func (r *HistoryRepository) ListFor(ctx context.Context, transactionID string) ([]*entity.ValidationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	records := make([]*entity.ValidationRecord, 0)
	for _, rec := range r.store.records {
		if rec.TransactionID == transactionID {
			records = append(records, cloneRecord(rec))
		}
	}
	r.store.mu.RUnlock()
	sortRecords(records)

	if r.unit != nil {
		r.unit.mu.Lock()
		for _, rec := range r.unit.records {
			if rec.TransactionID == transactionID {
				records = append(records, cloneRecord(*rec))
			}
		}
		r.unit.mu.Unlock()
	}
	return records, nil
}
