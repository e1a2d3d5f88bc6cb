package transaction

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
)

// DeleteDraft removes a transaction that is still a draft.
// Once a transaction has been submitted it is part of the audit trail and is kept.
func (u *TransactionUseCase) DeleteDraft(ctx context.Context, actor entity.Actor, id string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Role.CanWrite() {
		return fmt.Errorf("%w: role %s cannot delete transactions", errs.ErrForbidden, actor.Role)
	}
	if id == "" {
		return errs.ErrInvalidTransactionID
	}

	deleted, err := u.transactionRepo.DeleteDraft(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		u.logger.Warn("Refused to delete non-draft transaction", map[string]any{
			"transaction_id": id,
			"actor_id":       actor.ID,
		})
		return errs.ErrNotDraft
	}

	u.logger.Info("Draft transaction deleted", map[string]any{
		"transaction_id": id,
		"actor_id":       actor.ID,
	})
	return nil
}
