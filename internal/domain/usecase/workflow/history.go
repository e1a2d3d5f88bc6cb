package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/usecase"
)

var _ usecase.WorkflowUseCase = (*Service)(nil)

// History returns the validation records of a transaction in replay order
func (s *Service) History(ctx context.Context, transactionID string) ([]*entity.ValidationRecord, error) {
	if err := s.validator.validateTransactionID(transactionID); err != nil {
		return nil, err
	}

	if _, err := s.uow.GetTransactionRepository(ctx).Get(ctx, transactionID); err != nil {
		return nil, err
	}

	records, err := s.uow.GetHistoryRepository(ctx).ListFor(ctx, transactionID)
	if err != nil {
		s.logger.Error("Failed to list validation history", map[string]any{
			"transaction_id": transactionID,
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("failed to list validation history: %w", err)
	}
	return records, nil
}

// AllowedActions lists what actor may do with the transaction in its current status.
// It reads the stored status, never the history.
func (s *Service) AllowedActions(ctx context.Context, transactionID string, actor entity.Actor) ([]entity.Action, error) {
	if err := s.validator.validateTransactionID(transactionID); err != nil {
		return nil, err
	}
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	txn, err := s.uow.GetTransactionRepository(ctx).Get(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return s.authority.AllowedActions(actor.Role, txn.ValidationStatus), nil
}

// VerifyHistory replays the ledger from draft and compares the result with the stored status
func (s *Service) VerifyHistory(ctx context.Context, transactionID string) (*usecase.AuditReport, error) {
	if err := s.validator.validateTransactionID(transactionID); err != nil {
		return nil, err
	}

	txn, err := s.uow.GetTransactionRepository(ctx).Get(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	records, err := s.uow.GetHistoryRepository(ctx).ListFor(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list validation history: %w", err)
	}

	report := &usecase.AuditReport{
		TransactionID: transactionID,
		StoredStatus:  txn.ValidationStatus,
		RecordCount:   len(records),
	}

	replayed, err := entity.ReplayHistory(records)
	switch {
	case errors.Is(err, errs.ErrHistoryCorrupted):
		report.Problem = err.Error()
	case err != nil:
		return nil, err
	default:
		report.ReplayedStatus = replayed
		report.Consistent = replayed == txn.ValidationStatus
		if !report.Consistent {
			report.Problem = fmt.Sprintf("replayed status %s differs from stored status %s", replayed, txn.ValidationStatus)
		}
	}

	if !report.Consistent {
		s.logger.Error("Validation history does not match stored status", map[string]any{
			"transaction_id": transactionID,
			"stored_status":  string(txn.ValidationStatus),
			"record_count":   len(records),
			"problem":        report.Problem,
		})
	}

	return report, nil
}
