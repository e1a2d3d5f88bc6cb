package dto

import (
	"time"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/usecase"
)

// CreateTransactionRequest represents the API request for recording a draft transaction
type CreateTransactionRequest struct {
	Date          string  `json:"date" binding:"required,datetime=2006-01-02"`
	Amount        string  `json:"amount" binding:"required,decimal_amount"`
	Type          string  `json:"type" binding:"required,transaction_type"`
	Nature        string  `json:"nature" binding:"max=255"`
	Description   string  `json:"description" binding:"max=2000"`
	DepartmentID  *string `json:"departmentId" binding:"omitempty,max=64"`
	ProjectID     *string `json:"projectId" binding:"omitempty,max=64"`
	AccountID     *string `json:"accountId" binding:"omitempty,max=64"`
	StakeholderID *string `json:"stakeholderId" binding:"omitempty,max=64"`
	AssociateID   *string `json:"associateId" binding:"omitempty,max=64"`
}

// ToUseCase maps the request onto the use case input
func (r CreateTransactionRequest) ToUseCase() usecase.CreateTransactionRequest {
	return usecase.CreateTransactionRequest{
		Date:          r.Date,
		Amount:        r.Amount,
		Type:          r.Type,
		Nature:        r.Nature,
		Description:   r.Description,
		DepartmentID:  r.DepartmentID,
		ProjectID:     r.ProjectID,
		AccountID:     r.AccountID,
		StakeholderID: r.StakeholderID,
		AssociateID:   r.AssociateID,
	}
}

// ListTransactionsQuery holds the query parameters of a transaction listing
type ListTransactionsQuery struct {
	Status    string `form:"status" binding:"omitempty,validation_status"`
	Type      string `form:"type" binding:"omitempty,transaction_type"`
	CreatedBy string `form:"createdBy" binding:"omitempty,max=64"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset    int    `form:"offset" binding:"omitempty,min=0"`
}

// TransactionResponse represents a transaction on the wire
type TransactionResponse struct {
	ID               string    `json:"id"`
	Date             string    `json:"date"`
	Amount           string    `json:"amount"`
	Type             string    `json:"type"`
	Nature           string    `json:"nature"`
	Description      string    `json:"description"`
	DepartmentID     *string   `json:"departmentId,omitempty"`
	ProjectID        *string   `json:"projectId,omitempty"`
	AccountID        *string   `json:"accountId,omitempty"`
	StakeholderID    *string   `json:"stakeholderId,omitempty"`
	AssociateID      *string   `json:"associateId,omitempty"`
	CreatedBy        string    `json:"createdBy"`
	ValidationStatus string    `json:"validationStatus"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NewTransactionResponse maps a transaction entity to its wire form
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               t.ID,
		Date:             t.Date.Format("2006-01-02"),
		Amount:           t.FormattedAmount(),
		Type:             string(t.Type),
		Nature:           t.Nature,
		Description:      t.Description,
		DepartmentID:     t.DepartmentID,
		ProjectID:        t.ProjectID,
		AccountID:        t.AccountID,
		StakeholderID:    t.StakeholderID,
		AssociateID:      t.AssociateID,
		CreatedBy:        t.CreatedBy,
		ValidationStatus: string(t.ValidationStatus),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// TransactionListResponse wraps a page of transactions
type TransactionListResponse struct {
	Items  []TransactionResponse `json:"items"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}
