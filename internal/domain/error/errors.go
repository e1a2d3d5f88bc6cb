package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest       = 4000
	CodeInvalidAmount        = 4002
	CodeInvalidTransactionID = 4003
	CodeDuplicateTransaction = 4004
	CodeInvalidAction        = 4006
	CodeInvalidActor         = 4007
	CodeUnauthenticated      = 4010
	CodeForbidden            = 4030
	CodeTransactionNotFound  = 4040
	CodeStatusConflict       = 4090
	CodeTransactionLocked    = 4091
	CodeNotDraft             = 4092
	CodeTerminalState        = 4220
	CodeRateLimited          = 4290

	// 5xxx - Server errors
	CodeInternalServer   = 5000
	CodeHistoryCorrupted = 5001
	CodeDatabase         = 5030
)

// Error kinds exposed on the wire
const (
	KindNotFound        = "not_found"
	KindForbidden       = "forbidden"
	KindConflict        = "conflict"
	KindTerminalState   = "terminal_state"
	KindInvalidRequest  = "invalid_request"
	KindUnauthenticated = "unauthenticated"
	KindInternal        = "internal"
)

// Workflow errors
var (
	// ErrTransactionNotFound is returned when no transaction record exists for the identifier
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTerminalState is returned when an action targets a locked or rejected transaction
	ErrTerminalState = errors.New("transaction is in a terminal state")

	// ErrForbidden is returned when the actor's role may not perform the action from the current state
	ErrForbidden = errors.New("action not allowed for role")

	// ErrStatusConflict is returned when the stored status changed between read and write
	ErrStatusConflict = errors.New("transaction status changed concurrently")

	// ErrTransactionLocked is returned when another transition holds the transaction lock.
	// It matches ErrStatusConflict under errors.Is.
	ErrTransactionLocked = fmt.Errorf("transaction is locked by another operation: %w", ErrStatusConflict)

	// ErrNotDraft is returned when a draft-only operation targets a transaction that left draft
	ErrNotDraft = errors.New("transaction is no longer a draft")

	// ErrHistoryCorrupted is returned when the validation ledger cannot be replayed
	ErrHistoryCorrupted = errors.New("validation history is corrupted")
)

// Validation errors
var (
	ErrInvalidRequest         = errors.New("invalid request")
	ErrInvalidAction          = errors.New("invalid validation action")
	ErrInvalidStatus          = errors.New("invalid validation status")
	ErrInvalidRole            = errors.New("invalid role")
	ErrInvalidActor           = errors.New("invalid actor")
	ErrInvalidAmount          = errors.New("invalid amount format")
	ErrNegativeAmount         = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidTransactionID   = errors.New("transaction ID cannot be empty")
	ErrInvalidDate            = errors.New("invalid transaction date")
	ErrCommentTooLong         = errors.New("comment is too long")
	ErrDuplicateTransaction   = errors.New("transaction with this ID already exists")
)

// Infrastructure errors
var (
	// ErrUnauthenticated is returned when no verified identity accompanies the request
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrTerminalState):
		return CodeTerminalState
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrTransactionLocked):
		return CodeTransactionLocked
	case errors.Is(err, ErrStatusConflict):
		return CodeStatusConflict
	case errors.Is(err, ErrNotDraft):
		return CodeNotDraft
	case errors.Is(err, ErrDuplicateTransaction):
		return CodeDuplicateTransaction
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidTransactionID):
		return CodeInvalidTransactionID
	case errors.Is(err, ErrInvalidAction):
		return CodeInvalidAction
	case errors.Is(err, ErrInvalidActor), errors.Is(err, ErrInvalidRole):
		return CodeInvalidActor
	case IsValidationError(err):
		return CodeInvalidRequest
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, ErrHistoryCorrupted):
		return CodeHistoryCorrupted
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabase
	default:
		return CodeInternalServer
	}
}

// Kind classifies an error into the wire-level error kind
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrTransactionNotFound):
		return KindNotFound
	case errors.Is(err, ErrTerminalState):
		return KindTerminalState
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrStatusConflict), errors.Is(err, ErrNotDraft), errors.Is(err, ErrDuplicateTransaction):
		return KindConflict
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case IsValidationError(err):
		return KindInvalidRequest
	default:
		return KindInternal
	}
}

// HTTPStatus maps an error to the HTTP status code returned to clients
func HTTPStatus(err error) int {
	switch Kind(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindTerminalState:
		return http.StatusUnprocessableEntity
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsValidationError reports whether err stems from malformed client input
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidRequest,
		ErrInvalidAction,
		ErrInvalidStatus,
		ErrInvalidRole,
		ErrInvalidActor,
		ErrInvalidAmount,
		ErrNegativeAmount,
		ErrInvalidTransactionType,
		ErrInvalidTransactionID,
		ErrInvalidDate,
		ErrCommentTooLong,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// TransitionError represents a failed validation transition
type TransitionError struct {
	TransactionID string
	ActorID       string
	Role          string
	Action        string
	From          string
	Err           error
}

// Error implements the error interface for TransitionError
func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s on transaction %s by %s (%s) from %q failed: %v",
		e.Action, e.TransactionID, e.ActorID, e.Role, e.From, e.Err)
}

// Unwrap returns the underlying error
func (e *TransitionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "transition_error",
		"transaction_id": e.TransactionID,
		"actor_id":       e.ActorID,
		"role":           e.Role,
		"action":         e.Action,
		"from_status":    e.From,
		"error":          e.Err.Error(),
		"error_kind":     Kind(e.Err),
		"error_code":     ErrorCode(e.Err),
	}
}

// NewTransitionError creates a detailed transition error
func NewTransitionError(transactionID, actorID, role, action, from string, err error) error {
	return &TransitionError{
		TransactionID: transactionID,
		ActorID:       actorID,
		Role:          role,
		Action:        action,
		From:          from,
		Err:           err,
	}
}

// DuplicateTransactionError provides detailed information about duplicate transaction attempts
type DuplicateTransactionError struct {
	TransactionID string
}

// Error implements the error interface
func (e *DuplicateTransactionError) Error() string {
	return fmt.Sprintf("duplicate transaction detected: transactionID=%s", e.TransactionID)
}

// Is checks if the target error is an ErrDuplicateTransaction
func (e *DuplicateTransactionError) Is(target error) bool {
	return target == ErrDuplicateTransaction
}

// LogFields returns a map of fields for structured logging
func (e *DuplicateTransactionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "duplicate_transaction",
		"transaction_id": e.TransactionID,
		"error_code":     CodeDuplicateTransaction,
	}
}

// NewDuplicateTransactionError creates a new detailed duplicate transaction error
func NewDuplicateTransactionError(transactionID string) error {
	return &DuplicateTransactionError{TransactionID: transactionID}
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTransactionNotFound)
}

// IsConflictError checks if the error is a concurrency conflict, lock contention included
func IsConflictError(err error) bool {
	return errors.Is(err, ErrStatusConflict)
}

// IsTerminalStateError checks if the error reports a terminal transaction
func IsTerminalStateError(err error) bool {
	return errors.Is(err, ErrTerminalState)
}

// IsForbiddenError checks if the error is an authorization denial
func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrForbidden)
}
