package persistence

import "context"

// UnitOfWork scopes a status update and its history append to one atomic commit.
//
// Begin returns a context carrying the open unit; repositories obtained from that
// context read and write through it. Nothing is visible to other callers until Commit.
// Rollback after a successful Commit is a no-op.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	GetTransactionRepository(ctx context.Context) TransactionRepository
	GetHistoryRepository(ctx context.Context) ValidationHistoryRepository
}
