package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
)

type contextKey string

const unitKey contextKey = "memory-unit"

var errNoUnit = errors.New("no transaction found in context")

// statusChange is a staged compare-and-set
type statusChange struct {
	expected entity.ValidationStatus
	next     entity.ValidationStatus
}

// unit collects the writes of one unit of work
type unit struct {
	mu      sync.Mutex
	changes map[string]*statusChange
	records []*entity.ValidationRecord
	done    bool
}

// UnitOfWork stages writes against a Store
type UnitOfWork struct {
	store        *Store
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ persistence.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork creates a UnitOfWork over store
func NewUnitOfWork(store *Store, timeProvider coreport.TimeProvider, logger coreport.Logger) *UnitOfWork {
	return &UnitOfWork{store: store, timeProvider: timeProvider, logger: logger}
}

// Begin starts a unit of work
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if err := ctx.Err(); err != nil {
		return ctx, err
	}
	return context.WithValue(ctx, unitKey, &unit{changes: map[string]*statusChange{}}), nil
}

// Commit re-checks every staged guard and applies all writes or none
func (u *UnitOfWork) Commit(ctx context.Context) error {
	w, ok := ctx.Value(unitKey).(*unit)
	if !ok {
		return errNoUnit
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return fmt.Errorf("transaction has already been committed or rolled back")
	}
	w.done = true

	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, change := range w.changes {
		current, exists := s.transactions[id]
		if !exists || current.ValidationStatus != change.expected {
			return fmt.Errorf("failed to commit transaction: %w", errs.ErrStatusConflict)
		}
	}

	now := u.timeProvider.Now()
	for id, change := range w.changes {
		t := s.transactions[id]
		t.ValidationStatus = change.next
		t.UpdatedAt = now
		s.transactions[id] = t
	}
	for _, r := range w.records {
		s.seq++
		r.Sequence = s.seq
		s.records = append(s.records, *cloneRecord(*r))
	}

	return nil
}

// Rollback discards staged writes. Rolling back a finished unit is not an error.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	w, ok := ctx.Value(unitKey).(*unit)
	if !ok {
		return errNoUnit
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.done = true
	w.changes = nil
	w.records = nil
	return nil
}

// GetTransactionRepository returns a transaction repository bound to the current unit
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	w, _ := ctx.Value(unitKey).(*unit)
	return &TransactionRepository{store: u.store, unit: w, timeProvider: u.timeProvider}
}

// GetHistoryRepository returns a history repository bound to the current unit
func (u *UnitOfWork) GetHistoryRepository(ctx context.Context) persistence.ValidationHistoryRepository {
	w, _ := ctx.Value(unitKey).(*unit)
	return &HistoryRepository{store: u.store, unit: w}
}
