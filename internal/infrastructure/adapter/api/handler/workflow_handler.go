package handler

import (
	"net/http"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// WorkflowHandler handles validation workflow HTTP requests
type WorkflowHandler struct {
	workflow usecase.WorkflowUseCase
	logger   coreport.Logger
}

// NewWorkflowHandler creates a new workflow handler instance
func NewWorkflowHandler(workflow usecase.WorkflowUseCase, logger coreport.Logger) *WorkflowHandler {
	return &WorkflowHandler{
		workflow: workflow,
		logger:   logger,
	}
}

// Transition handles POST /transactions/:id/transition
func (h *WorkflowHandler) Transition(c *gin.Context) {
	actor, ok := requireActor(c, h.logger)
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindingError(err))
		return
	}

	request := usecase.TransitionRequest{
		TransactionID: c.Param("id"),
		Actor:         actor,
		Action:        entity.Action(req.Action),
		Comment:       req.Comment,
	}
	if req.ExpectedStatus != nil {
		expected := entity.ValidationStatus(*req.ExpectedStatus)
		request.ExpectedStatus = &expected
	}

	result, err := h.workflow.Transition(c.Request.Context(), request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransitionResponse(result))
}

// History handles GET /transactions/:id/history
func (h *WorkflowHandler) History(c *gin.Context) {
	id := c.Param("id")
	records, err := h.workflow.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewHistoryResponse(id, records))
}

// AllowedActions handles GET /transactions/:id/allowed-actions
func (h *WorkflowHandler) AllowedActions(c *gin.Context) {
	actor, ok := requireActor(c, h.logger)
	if !ok {
		return
	}

	id := c.Param("id")
	actions, err := h.workflow.AllowedActions(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	names := make([]string, 0, len(actions))
	for _, a := range actions {
		names = append(names, string(a))
	}
	c.JSON(http.StatusOK, dto.AllowedActionsResponse{
		TransactionID: id,
		Role:          string(actor.Role),
		Actions:       names,
	})
}

// Audit handles GET /transactions/:id/audit
func (h *WorkflowHandler) Audit(c *gin.Context) {
	report, err := h.workflow.VerifyHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuditResponse(report))
}
