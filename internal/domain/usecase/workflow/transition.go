package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/usecase"
)

// Transition applies req.Action to the transaction on behalf of req.Actor.
//
// The steps are:
// 1. Validate the request
// 2. Take the per-transaction lock, failing fast with a conflict on contention
// 3. Load the current status and check the caller's expected status
// 4. Refuse terminal statuses, compute the target and authorize the actor
// 5. Compare-and-set the status and append the history record in one unit of work
//
// A failed call leaves both the status and the history untouched.
func (s *Service) Transition(ctx context.Context, req usecase.TransitionRequest) (*usecase.TransitionResult, error) {
	start := s.timeProvider.Now()

	if err := s.validator.ValidateTransition(req); err != nil {
		s.observe(req.Action, err, start)
		return nil, s.transitionError(req, "", err)
	}

	owner, err := s.lockRepo.AcquireLock(ctx, req.TransactionID, s.lockTimeout)
	if err != nil {
		if !errors.Is(err, errs.ErrTransactionLocked) {
			s.logger.Error("Failed to acquire transaction lock", map[string]any{
				"transaction_id": req.TransactionID,
				"error":          err.Error(),
			})
		}
		s.observe(req.Action, err, start)
		return nil, s.transitionError(req, "", err)
	}
	defer s.releaseLock(req.TransactionID, owner)

	record, from, err := s.applyTransition(ctx, req)
	s.observe(req.Action, err, start)
	if err != nil {
		txErr := s.transitionError(req, from, err)
		s.logRejected(txErr)
		return nil, txErr
	}

	s.logger.Info("Transaction transitioned", map[string]any{
		"transaction_id": req.TransactionID,
		"actor_id":       req.Actor.ID,
		"role":           string(req.Actor.Role),
		"action":         string(req.Action),
		"from_status":    string(record.FromStatus),
		"to_status":      string(record.ToStatus),
		"duration_ms":    s.timeProvider.Since(start).Milliseconds(),
	})

	return &usecase.TransitionResult{
		Status: record.ToStatus,
		Record: record,
	}, nil
}

// applyTransition runs the read-decide-write steps inside a unit of work.
// It returns the status read from the store so failures can be reported against it.
func (s *Service) applyTransition(
	ctx context.Context,
	req usecase.TransitionRequest,
) (record *entity.ValidationRecord, from entity.ValidationStatus, err error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to begin transition: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Warn("Failed to roll back transition", map[string]any{
				"transaction_id": req.TransactionID,
				"error":          rbErr.Error(),
			})
		}
	}()

	txRepo := s.uow.GetTransactionRepository(txCtx)
	txn, err := txRepo.Get(txCtx, req.TransactionID)
	if err != nil {
		return nil, "", err
	}
	from = txn.ValidationStatus

	if req.ExpectedStatus != nil && *req.ExpectedStatus != from {
		return nil, from, fmt.Errorf("%w: expected %s, found %s", errs.ErrStatusConflict, *req.ExpectedStatus, from)
	}

	if from.IsTerminal() {
		return nil, from, fmt.Errorf("%w: %s", errs.ErrTerminalState, from)
	}

	to, err := entity.NextStatus(from, req.Action)
	if err != nil {
		return nil, from, err
	}

	if !s.authority.Authorize(req.Actor.Role, from, req.Action) {
		return nil, from, fmt.Errorf("%w: %s cannot %s from %s", errs.ErrForbidden, req.Actor.Role, req.Action, from)
	}

	updated, err := txRepo.UpdateStatus(txCtx, req.TransactionID, from, to)
	if err != nil {
		return nil, from, fmt.Errorf("failed to update status: %w", err)
	}
	if !updated {
		return nil, from, fmt.Errorf("%w: status is no longer %s", errs.ErrStatusConflict, from)
	}

	record = entity.NewValidationRecord(
		s.idGenerator.NewID(),
		req.TransactionID,
		from,
		to,
		req.Action,
		req.Actor,
		normalizeComment(req.Comment),
		s.timeProvider.Now(),
	)
	if err := s.uow.GetHistoryRepository(txCtx).Append(txCtx, record); err != nil {
		return nil, from, fmt.Errorf("failed to append validation record: %w", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, from, err
	}
	committed = true

	return record, from, nil
}

func (s *Service) releaseLock(transactionID, owner string) {
	// The caller's context may already be cancelled; the lock must still go.
	ctx, cancel := s.timeProvider.WithTimeout(context.Background(), coreport.Second)
	defer cancel()

	if err := s.lockRepo.ReleaseLock(ctx, transactionID, owner); err != nil {
		s.logger.Warn("Failed to release transaction lock", map[string]any{
			"transaction_id": transactionID,
			"error":          err.Error(),
		})
	}
}

func (s *Service) transitionError(req usecase.TransitionRequest, from entity.ValidationStatus, err error) error {
	return errs.NewTransitionError(
		req.TransactionID,
		req.Actor.ID,
		string(req.Actor.Role),
		string(req.Action),
		string(from),
		err,
	)
}

// logRejected logs expected negative outcomes at warn level and anything else as an error
func (s *Service) logRejected(err error) {
	var txErr *errs.TransitionError
	if !errors.As(err, &txErr) {
		return
	}
	if errs.Kind(err) == errs.KindInternal {
		s.logger.Error("Transition failed", txErr.LogFields())
		return
	}
	s.logger.Warn("Transition refused", txErr.LogFields())
}

func (s *Service) observe(action entity.Action, err error, start time.Time) {
	s.metrics.ObserveTransition(string(action), outcomeOf(err), s.timeProvider.Since(start))
}

func outcomeOf(err error) string {
	if err == nil {
		return coreport.OutcomeAccepted
	}
	switch errs.Kind(err) {
	case errs.KindForbidden:
		return coreport.OutcomeForbidden
	case errs.KindNotFound:
		return coreport.OutcomeNotFound
	case errs.KindConflict:
		return coreport.OutcomeConflict
	case errs.KindTerminalState:
		return coreport.OutcomeTerminalState
	case errs.KindInvalidRequest:
		return coreport.OutcomeInvalid
	default:
		return coreport.OutcomeError
	}
}
