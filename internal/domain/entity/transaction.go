package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	tport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a bookkeeping entry
type TransactionType string

// Transaction types
const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// MaxDescriptionLength bounds the free-text description of a transaction
const MaxDescriptionLength = 2000

// Transaction is a bookkeeping entry routed through the validation workflow
type Transaction struct {
	ID               string           // Unique identifier
	Date             time.Time        // Accounting date of the entry
	Amount           decimal.Decimal  // Strictly positive, at most two decimal places
	Type             TransactionType  // Income or expense
	Nature           string           // Free-form nature label
	Description      string           // Free-form description
	DepartmentID     *string          // Optional department reference
	ProjectID        *string          // Optional project reference
	AccountID        *string          // Optional account reference
	StakeholderID    *string          // Optional stakeholder reference
	AssociateID      *string          // Optional associate reference
	CreatedBy        string           // Actor that recorded the entry
	ValidationStatus ValidationStatus // Current workflow position
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TransactionParams carries the caller-supplied fields of a new transaction
type TransactionParams struct {
	ID            string
	Date          time.Time
	Amount        string
	Type          string
	Nature        string
	Description   string
	DepartmentID  *string
	ProjectID     *string
	AccountID     *string
	StakeholderID *string
	AssociateID   *string
}

// NewTransaction validates params and creates a draft transaction recorded by creator
func NewTransaction(params TransactionParams, creator Actor, timeProvider tport.TimeProvider) (*Transaction, error) {
	if err := creator.Validate(); err != nil {
		return nil, err
	}
	if !creator.Role.CanWrite() {
		return nil, fmt.Errorf("%w: role %s cannot record transactions", errs.ErrForbidden, creator.Role)
	}
	if strings.TrimSpace(params.ID) == "" {
		return nil, errs.ErrInvalidTransactionID
	}
	if params.Date.IsZero() {
		return nil, errs.ErrInvalidDate
	}

	txType := TransactionType(params.Type)
	if !txType.IsValid() {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidTransactionType, params.Type)
	}

	amount, err := ParseAmount(params.Amount)
	if err != nil {
		return nil, err
	}

	if len(params.Description) > MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description exceeds %d characters", errs.ErrInvalidRequest, MaxDescriptionLength)
	}

	now := timeProvider.Now()
	return &Transaction{
		ID:               params.ID,
		Date:             params.Date,
		Amount:           amount,
		Type:             txType,
		Nature:           strings.TrimSpace(params.Nature),
		Description:      params.Description,
		DepartmentID:     normalizeRef(params.DepartmentID),
		ProjectID:        normalizeRef(params.ProjectID),
		AccountID:        normalizeRef(params.AccountID),
		StakeholderID:    normalizeRef(params.StakeholderID),
		AssociateID:      normalizeRef(params.AssociateID),
		CreatedBy:        creator.ID,
		ValidationStatus: StatusDraft,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// IsValid reports whether t is a known transaction type
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// IsIncome returns true if this transaction records money coming in
func (t *Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// IsExpense returns true if this transaction records money going out
func (t *Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// IsEditable reports whether the transaction may still be modified or deleted
func (t *Transaction) IsEditable() bool {
	return t.ValidationStatus == StatusDraft
}

// FormattedAmount returns the amount with exactly two decimal places
func (t *Transaction) FormattedAmount() string {
	return FormatAmount(t.Amount)
}

func normalizeRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	v := strings.TrimSpace(*ref)
	if v == "" {
		return nil
	}
	return &v
}
