package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/usecase"
)

// DateLayout is the accepted format of a transaction date
const DateLayout = "2006-01-02"

// Create records a new draft transaction for actor
func (u *TransactionUseCase) Create(
	ctx context.Context,
	actor entity.Actor,
	req usecase.CreateTransactionRequest,
) (*entity.Transaction, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: expected %s", errs.ErrInvalidDate, DateLayout)
	}

	txn, err := entity.NewTransaction(entity.TransactionParams{
		ID:            u.idGenerator.NewID(),
		Date:          date,
		Amount:        req.Amount,
		Type:          req.Type,
		Nature:        req.Nature,
		Description:   req.Description,
		DepartmentID:  req.DepartmentID,
		ProjectID:     req.ProjectID,
		AccountID:     req.AccountID,
		StakeholderID: req.StakeholderID,
		AssociateID:   req.AssociateID,
	}, actor, u.timeProvider)
	if err != nil {
		return nil, err
	}

	id, err := u.transactionRepo.Create(ctx, txn)
	if err != nil {
		u.logger.Error("Failed to create transaction", map[string]any{
			"transaction_id": txn.ID,
			"actor_id":       actor.ID,
			"error":          err.Error(),
		})
		return nil, err
	}
	txn.ID = id

	u.metrics.IncTransactionsCreated(string(txn.Type))
	u.logger.Info("Transaction recorded", map[string]any{
		"transaction_id": txn.ID,
		"actor_id":       actor.ID,
		"role":           string(actor.Role),
		"type":           string(txn.Type),
		"amount":         txn.FormattedAmount(),
	})

	return txn, nil
}
