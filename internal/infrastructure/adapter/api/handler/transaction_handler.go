package handler

import (
	"net/http"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles transaction record HTTP requests
type TransactionHandler struct {
	transactions usecase.TransactionUseCase
	logger       coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(transactions usecase.TransactionUseCase, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		logger:       logger,
	}
}

// Create handles POST /transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c, h.logger)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindingError(err))
		return
	}

	txn, err := h.transactions.Create(c.Request.Context(), actor, req.ToUseCase())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTransactionResponse(txn))
}

// Get handles GET /transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	txn, err := h.transactions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(txn))
}

// List handles GET /transactions
func (h *TransactionHandler) List(c *gin.Context) {
	var query dto.ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, h.logger, bindingError(err))
		return
	}

	filter := persistence.TransactionFilter{
		CreatedBy: query.CreatedBy,
		Limit:     query.Limit,
		Offset:    query.Offset,
	}
	if query.Status != "" {
		status := entity.ValidationStatus(query.Status)
		filter.Status = &status
	}
	if query.Type != "" {
		txType := entity.TransactionType(query.Type)
		filter.Type = &txType
	}

	txns, err := h.transactions.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		items = append(items, dto.NewTransactionResponse(t))
	}
	c.JSON(http.StatusOK, dto.TransactionListResponse{
		Items:  items,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
}

// Delete handles DELETE /transactions/:id for drafts
func (h *TransactionHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c, h.logger)
	if !ok {
		return
	}

	if err := h.transactions.DeleteDraft(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
