package dto

import (
	"time"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/usecase"
)

// TransitionRequest represents the body of POST /transactions/:id/transition
type TransitionRequest struct {
	Action         string  `json:"action" binding:"required,validation_action"`
	Comment        *string `json:"comment" binding:"omitempty,max=1000"`
	ExpectedStatus *string `json:"expectedStatus" binding:"omitempty,validation_status"`
}

// ValidationRecordResponse represents one history entry on the wire
type ValidationRecordResponse struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transactionId"`
	FromStatus    string    `json:"fromStatus"`
	ToStatus      string    `json:"toStatus"`
	Action        string    `json:"action"`
	ActorID       string    `json:"actorId"`
	ActorRole     string    `json:"actorRole"`
	Comment       *string   `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewValidationRecordResponse maps a validation record to its wire form
func NewValidationRecordResponse(r *entity.ValidationRecord) ValidationRecordResponse {
	return ValidationRecordResponse{
		ID:            r.ID,
		TransactionID: r.TransactionID,
		FromStatus:    string(r.FromStatus),
		ToStatus:      string(r.ToStatus),
		Action:        string(r.Action),
		ActorID:       r.ActorID,
		ActorRole:     string(r.ActorRole),
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}

// TransitionResponse is returned for an accepted transition
type TransitionResponse struct {
	Status string                   `json:"status"`
	Record ValidationRecordResponse `json:"record"`
}

// NewTransitionResponse maps a transition result to its wire form
func NewTransitionResponse(result *usecase.TransitionResult) TransitionResponse {
	return TransitionResponse{
		Status: string(result.Status),
		Record: NewValidationRecordResponse(result.Record),
	}
}

// HistoryResponse lists the validation history of a transaction
type HistoryResponse struct {
	TransactionID string                     `json:"transactionId"`
	Records       []ValidationRecordResponse `json:"records"`
}

// NewHistoryResponse maps ordered records to their wire form
func NewHistoryResponse(transactionID string, records []*entity.ValidationRecord) HistoryResponse {
	out := make([]ValidationRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, NewValidationRecordResponse(r))
	}
	return HistoryResponse{TransactionID: transactionID, Records: out}
}

// AllowedActionsResponse lists the actions the caller may perform
type AllowedActionsResponse struct {
	TransactionID string   `json:"transactionId"`
	Role          string   `json:"role"`
	Actions       []string `json:"actions"`
}

// AuditResponse reports whether the history replays to the stored status
type AuditResponse struct {
	TransactionID  string `json:"transactionId"`
	StoredStatus   string `json:"storedStatus"`
	ReplayedStatus string `json:"replayedStatus,omitempty"`
	RecordCount    int    `json:"recordCount"`
	Consistent     bool   `json:"consistent"`
	Problem        string `json:"problem,omitempty"`
}

// NewAuditResponse maps an audit report to its wire form
func NewAuditResponse(report *usecase.AuditReport) AuditResponse {
	return AuditResponse{
		TransactionID:  report.TransactionID,
		StoredStatus:   string(report.StoredStatus),
		ReplayedStatus: string(report.ReplayedStatus),
		RecordCount:    report.RecordCount,
		Consistent:     report.Consistent,
		Problem:        report.Problem,
	}
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}
