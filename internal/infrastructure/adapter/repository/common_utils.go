package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ErrorType is the storage-level category of a driver error
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// classifyRule matches an error by driver code first and message fragments second
type classifyRule struct {
	kind      ErrorType
	pgCodes   []string
	sqlite    func(sqlite3.Error) bool
	fragments []string
}

// Rules are checked in order; the first match wins.
var classifyRules = []classifyRule{
	{
		kind:      DuplicateKeyError,
		pgCodes:   []string{"23505"},
		sqlite:    func(e sqlite3.Error) bool { return e.ExtendedCode == sqlite3.ErrConstraintUnique || e.ExtendedCode == sqlite3.ErrConstraintPrimaryKey },
		fragments: []string{"duplicate key", "UNIQUE constraint", "Duplicate entry"},
	},
	{
		kind:    LockError,
		pgCodes: []string{"40001", "40P01", "55P03"},
		sqlite:  func(e sqlite3.Error) bool { return e.Code == sqlite3.ErrBusy || e.Code == sqlite3.ErrLocked },
		fragments: []string{
			"deadlock", "lock wait timeout", "could not serialize access", "serialization failure",
			"SQLSTATE 40001", "database is locked", "database table is locked", "SQLITE_BUSY",
		},
	},
	{
		kind:      TransientError,
		pgCodes:   []string{"57P01", "53300"},
		fragments: []string{"connection reset", "connection refused", "timeout", "EOF", "server closed", "broken pipe"},
	},
	{
		kind:      ConnectionError,
		pgCodes:   []string{"08000", "08003", "08006"},
		fragments: []string{"connection", "dial", "network"},
	},
	{
		kind:      ConstraintError,
		pgCodes:   []string{"23502", "23503", "23514"},
		sqlite:    func(e sqlite3.Error) bool { return e.Code == sqlite3.ErrConstraint },
		fragments: []string{"constraint", "violates", "foreign key", "not null"},
	},
}

func (r classifyRule) matches(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		for _, code := range r.pgCodes {
			if pgErr.Code == code {
				return true
			}
		}
	}
	var liteErr sqlite3.Error
	if r.sqlite != nil && errors.As(err, &liteErr) && r.sqlite(liteErr) {
		return true
	}
	msg := err.Error()
	for _, f := range r.fragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}

// ErrorClassifier sorts postgres and sqlite driver errors into ErrorTypes
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the first matching ErrorType, or "" when none applies
func (c *ErrorClassifier) Classify(err error) ErrorType {
	if err == nil {
		return ""
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return DuplicateKeyError
	}
	for _, r := range classifyRules {
		if r.matches(err) {
			return r.kind
		}
	}
	return ""
}

// IsDuplicateKeyError reports a unique or primary key violation
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	return c.Classify(err) == DuplicateKeyError
}

// IsLockError reports a lock wait, deadlock or serialization failure
func (c *ErrorClassifier) IsLockError(err error) bool {
	return c.Classify(err) == LockError
}

// Wrap converts a driver error into a domain error. Lock and serialization
// failures become conflicts; everything else is a database error.
func (c *ErrorClassifier) Wrap(err error, operation string) error {
	if err == nil {
		return nil
	}
	if isContextError(err) {
		return fmt.Errorf("%s: %w", operation, err)
	}
	if c.IsLockError(err) {
		return fmt.Errorf("%w: %s: %s", errs.ErrStatusConflict, operation, err.Error())
	}
	return fmt.Errorf("%w: %s: %s", errs.ErrDatabaseConnection, operation, err.Error())
}

func isContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
