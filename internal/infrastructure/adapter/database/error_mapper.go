package database

import (
	"errors"
	"fmt"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrTransactionNotFound
	}

	switch m.classifier.Classify(err) {
	case repository.LockError:
		// serialization failures mean a concurrent writer won
		return fmt.Errorf("%w: %s", errs.ErrStatusConflict, operation)
	case repository.DuplicateKeyError:
		return errs.ErrDuplicateTransaction
	case repository.TransientError, repository.ConnectionError:
		return fmt.Errorf("%w: %s: %s", errs.ErrDatabaseConnection, operation, err.Error())
	default:
		return fmt.Errorf("%w: %s: %s", errs.ErrInternalServer, operation, err.Error())
	}
}
