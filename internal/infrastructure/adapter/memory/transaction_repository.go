package memory

import (
	"context"
	"sort"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
)

// TransactionRepository reads and writes transactions in a Store.
// Inside a unit of work, status updates are staged until commit.
type TransactionRepository struct {
	store        *Store
	unit         *unit
	timeProvider coreport.TimeProvider
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

// NewTransactionRepository creates a repository writing straight to store
func NewTransactionRepository(store *Store, timeProvider coreport.TimeProvider) *TransactionRepository {
	return &TransactionRepository{store: store, timeProvider: timeProvider}
}

// Get retrieves a transaction, including status changes staged in the current unit
func (r *TransactionRepository) Get(ctx context.Context, id string) (*entity.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	t, ok := r.store.transactions[id]
	r.store.mu.RUnlock()
	if !ok {
		return nil, errs.ErrTransactionNotFound
	}

	out := cloneTransaction(t)
	if change := r.staged(id); change != nil {
		out.ValidationStatus = change.next
	}
	return out, nil
}

// Create saves a new transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.transactions[transaction.ID]; exists {
		return "", errs.NewDuplicateTransactionError(transaction.ID)
	}
	r.store.transactions[transaction.ID] = *cloneTransaction(*transaction)
	return transaction.ID, nil
}

// UpdateStatus compares and sets the status. Inside a unit the write is staged
// and the guard is checked again at commit.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id string, expected, next entity.ValidationStatus) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if r.unit != nil {
		current, err := r.Get(ctx, id)
		if err != nil || current.ValidationStatus != expected {
			return false, nil
		}

		r.unit.mu.Lock()
		defer r.unit.mu.Unlock()
		if r.unit.done {
			return false, errNoUnit
		}
		if change, ok := r.unit.changes[id]; ok {
			change.next = next
		} else {
			r.unit.changes[id] = &statusChange{expected: expected, next: next}
		}
		return true, nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.transactions[id]
	if !ok || t.ValidationStatus != expected {
		return false, nil
	}
	t.ValidationStatus = next
	t.UpdatedAt = r.timeProvider.Now()
	r.store.transactions[id] = t
	return true, nil
}

// List returns transactions matching filter, newest first
func (r *TransactionRepository) List(ctx context.Context, filter persistence.TransactionFilter) ([]*entity.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	matched := make([]*entity.Transaction, 0, len(r.store.transactions))
	for _, t := range r.store.transactions {
		if filter.Status != nil && t.ValidationStatus != *filter.Status {
			continue
		}
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		if filter.CreatedBy != "" && t.CreatedBy != filter.CreatedBy {
			continue
		}
		matched = append(matched, cloneTransaction(t))
	}
	r.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*entity.Transaction{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// DeleteDraft removes a transaction only while it is still a draft
func (r *TransactionRepository) DeleteDraft(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.transactions[id]
	if !ok {
		return false, errs.ErrTransactionNotFound
	}
	if t.ValidationStatus != entity.StatusDraft {
		return false, nil
	}
	delete(r.store.transactions, id)
	return true, nil
}

func (r *TransactionRepository) staged(id string) *statusChange {
	if r.unit == nil {
		return nil
	}
	r.unit.mu.Lock()
	defer r.unit.mu.Unlock()
	if change, ok := r.unit.changes[id]; ok {
		c := *change
		return &c
	}
	return nil
}
