package workflow

import (
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/usecase"
)

// TransitionValidator provides validation for transition requests
type TransitionValidator struct{}

// NewTransitionValidator creates a new TransitionValidator
func NewTransitionValidator() *TransitionValidator {
	return &TransitionValidator{}
}

// ValidateTransition validates all request fields before any store access
func (v *TransitionValidator) ValidateTransition(req usecase.TransitionRequest) error {
	if err := v.validateTransactionID(req.TransactionID); err != nil {
		return err
	}

	if err := req.Actor.Validate(); err != nil {
		return err
	}

	if !req.Action.IsValid() {
		return fmt.Errorf("%w: %q", errs.ErrInvalidAction, req.Action)
	}

	if req.Comment != nil && len(*req.Comment) > entity.MaxCommentLength {
		return fmt.Errorf("%w: maximum %d characters", errs.ErrCommentTooLong, entity.MaxCommentLength)
	}

	if req.ExpectedStatus != nil && !req.ExpectedStatus.IsValid() {
		return fmt.Errorf("%w: %q", errs.ErrInvalidStatus, *req.ExpectedStatus)
	}

	return nil
}

// validateTransactionID checks if the transaction ID is valid
func (v *TransitionValidator) validateTransactionID(transactionID string) error {
	if strings.TrimSpace(transactionID) == "" {
		return errs.ErrInvalidTransactionID
	}
	return nil
}

// normalizeComment drops blank comments so the ledger stores either text or nothing
func normalizeComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	c := strings.TrimSpace(*comment)
	if c == "" {
		return nil
	}
	return &c
}
