package usecase

import (
	"context"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
)

// TransitionRequest asks the workflow to apply an action to a transaction
type TransitionRequest struct {
	TransactionID string
	Actor         entity.Actor
	Action        entity.Action
	Comment       *string
	// ExpectedStatus, when set, is the status the caller last read. The transition
	// fails with a conflict if the stored status differs.
	ExpectedStatus *entity.ValidationStatus
}

// TransitionResult is the outcome of an accepted transition
type TransitionResult struct {
	Status entity.ValidationStatus
	Record *entity.ValidationRecord
}

// AuditReport compares a transaction's stored status with its replayed history
type AuditReport struct {
	TransactionID  string
	StoredStatus   entity.ValidationStatus
	ReplayedStatus entity.ValidationStatus
	RecordCount    int
	Consistent     bool
	Problem        string
}

// WorkflowUseCase defines the validation workflow operations
type WorkflowUseCase interface {
	// Transition applies an action on behalf of an actor
	Transition(ctx context.Context, req TransitionRequest) (*TransitionResult, error)

	// History returns the ordered validation records of a transaction
	History(ctx context.Context, transactionID string) ([]*entity.ValidationRecord, error)

	// AllowedActions lists the actions the actor may perform right now
	AllowedActions(ctx context.Context, transactionID string, actor entity.Actor) ([]entity.Action, error)

	// VerifyHistory replays the history and checks it against the stored status
	VerifyHistory(ctx context.Context, transactionID string) (*AuditReport, error)
}
