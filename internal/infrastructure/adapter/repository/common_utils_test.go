package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorClassifier(t *testing.T) {
	c := NewErrorClassifier()

	testCases := []struct {
		err      error
		expected ErrorType
	}{
		{errors.New(`duplicate key value violates unique constraint "transactions_pkey"`), DuplicateKeyError},
		{errors.New("UNIQUE constraint failed: transactions.id"), DuplicateKeyError},
		{gorm.ErrDuplicatedKey, DuplicateKeyError},
		{errors.New("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)"), LockError},
		{errors.New("database is locked"), LockError},
		{errors.New("read: connection reset by peer"), TransientError},
		{errors.New("dial tcp 10.0.0.1:5432"), ConnectionError},
		{errors.New("null value violates not null constraint"), ConstraintError},
		{errors.New("something else"), ""},
		{&pgconn.PgError{Code: "40P01", Message: "deadlock detected"}, LockError},
		{fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), DuplicateKeyError},
		{&pgconn.PgError{Code: "23503"}, ConstraintError},
		{sqlite3.Error{Code: sqlite3.ErrBusy}, LockError},
		{sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, DuplicateKeyError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.expected, c.Classify(tc.err))
		})
	}
}

func TestErrorClassifierWrap(t *testing.T) {
	c := NewErrorClassifier()

	assert.NoError(t, c.Wrap(nil, "op"))
	assert.ErrorIs(t, c.Wrap(errors.New("could not serialize access"), "op"), errs.ErrStatusConflict)
	assert.ErrorIs(t, c.Wrap(errors.New("connection refused"), "op"), errs.ErrDatabaseConnection)
	assert.ErrorIs(t, c.Wrap(fmt.Errorf("query: %w", context.DeadlineExceeded), "op"), context.DeadlineExceeded)
}
