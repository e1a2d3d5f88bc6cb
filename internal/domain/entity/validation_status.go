package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
)

// ValidationStatus is the position of a transaction in the validation workflow
type ValidationStatus string

// Validation statuses
const (
	StatusDraft        ValidationStatus = "draft"
	StatusSubmitted    ValidationStatus = "submitted"
	StatusRAFValidated ValidationStatus = "raf_validated"
	StatusDGValidated  ValidationStatus = "dg_validated"
	StatusLocked       ValidationStatus = "locked"
	StatusRejected     ValidationStatus = "rejected"
)

// AllStatuses lists every validation status in workflow order
var AllStatuses = []ValidationStatus{
	StatusDraft,
	StatusSubmitted,
	StatusRAFValidated,
	StatusDGValidated,
	StatusLocked,
	StatusRejected,
}

// Action is a user intent that may move a transaction between statuses
type Action string

// Actions
const (
	ActionSubmit      Action = "submit"
	ActionValidateRAF Action = "validate_raf"
	ActionValidateDG  Action = "validate_dg"
	ActionLock        Action = "lock"
	ActionReject      Action = "reject"
)

// AllActions lists every action in workflow order
var AllActions = []Action{
	ActionSubmit,
	ActionValidateRAF,
	ActionValidateDG,
	ActionLock,
	ActionReject,
}

// ParseValidationStatus converts a raw status into a ValidationStatus
func ParseValidationStatus(raw string) (ValidationStatus, error) {
	s := ValidationStatus(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidStatus, raw)
	}
	return s, nil
}

// IsValid reports whether s is a known status
func (s ValidationStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusRAFValidated, StatusDGValidated, StatusLocked, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no action may leave s
func (s ValidationStatus) IsTerminal() bool {
	return s == StatusLocked || s == StatusRejected
}

// Successor returns the next status on the linear chain, false when s has none
func (s ValidationStatus) Successor() (ValidationStatus, bool) {
	switch s {
	case StatusDraft:
		return StatusSubmitted, true
	case StatusSubmitted:
		return StatusRAFValidated, true
	case StatusRAFValidated:
		return StatusDGValidated, true
	case StatusDGValidated:
		return StatusLocked, true
	}
	return "", false
}

func (s ValidationStatus) String() string {
	return string(s)
}

// ParseAction converts a raw action name into an Action
func ParseAction(raw string) (Action, error) {
	a := Action(strings.TrimSpace(raw))
	if !a.IsValid() {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidAction, raw)
	}
	return a, nil
}

// IsValid reports whether a is a known action
func (a Action) IsValid() bool {
	switch a {
	case ActionSubmit, ActionValidateRAF, ActionValidateDG, ActionLock, ActionReject:
		return true
	}
	return false
}

func (a Action) String() string {
	return string(a)
}

// NextStatus computes the target status of applying action to a transaction in current.
// The result ignores the actor: whether the edge is permitted for a role is decided
// by the authorization table, so a non-reject action always targets the linear
// successor even when the action name does not match the current step.
func NextStatus(current ValidationStatus, action Action) (ValidationStatus, error) {
	if !current.IsValid() {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidStatus, current)
	}
	if !action.IsValid() {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidAction, action)
	}
	if current.IsTerminal() {
		return "", fmt.Errorf("%w: %s", errs.ErrTerminalState, current)
	}
	if action == ActionReject {
		return StatusRejected, nil
	}
	next, _ := current.Successor()
	return next, nil
}

// IsLegalEdge reports whether from -> to is an edge of the workflow graph
func IsLegalEdge(from, to ValidationStatus) bool {
	if from.IsTerminal() || !from.IsValid() {
		return false
	}
	if to == StatusRejected {
		return from == StatusSubmitted || from == StatusRAFValidated
	}
	next, ok := from.Successor()
	return ok && next == to
}
