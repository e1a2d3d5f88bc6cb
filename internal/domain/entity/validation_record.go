package entity

import (
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
)

// MaxCommentLength bounds the free-text comment attached to a transition
const MaxCommentLength = 1000

// ValidationRecord is one immutable entry of a transaction's validation history
type ValidationRecord struct {
	ID            string
	TransactionID string
	FromStatus    ValidationStatus
	ToStatus      ValidationStatus
	Action        Action
	ActorID       string
	ActorRole     Role
	Comment       *string
	CreatedAt     time.Time
	Sequence      int64 // Insertion order assigned by the store, breaks timestamp ties
}

// NewValidationRecord builds the record of an accepted transition
func NewValidationRecord(
	id string,
	transactionID string,
	from, to ValidationStatus,
	action Action,
	actor Actor,
	comment *string,
	at time.Time,
) *ValidationRecord {
	return &ValidationRecord{
		ID:            id,
		TransactionID: transactionID,
		FromStatus:    from,
		ToStatus:      to,
		Action:        action,
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		Comment:       comment,
		CreatedAt:     at,
	}
}

// ReplayHistory replays ordered records from draft and returns the resulting status
func ReplayHistory(records []*ValidationRecord) (ValidationStatus, error) {
	current := StatusDraft
	for i, r := range records {
		if r.FromStatus != current {
			return "", fmt.Errorf("%w: record %d starts at %s, expected %s",
				errs.ErrHistoryCorrupted, i, r.FromStatus, current)
		}
		if !IsLegalEdge(r.FromStatus, r.ToStatus) {
			return "", fmt.Errorf("%w: record %d has illegal edge %s -> %s",
				errs.ErrHistoryCorrupted, i, r.FromStatus, r.ToStatus)
		}
		current = r.ToStatus
	}
	return current, nil
}
