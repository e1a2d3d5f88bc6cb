package dto

import (
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
)

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// NewErrorResponse builds the wire form of err. Internal errors never leak their text.
func NewErrorResponse(err error, requestID string) ErrorResponse {
	kind := errs.Kind(err)
	message := err.Error()
	if kind == errs.KindInternal {
		message = "Internal server error"
	}
	return ErrorResponse{
		Error:     kind,
		Code:      errs.ErrorCode(err),
		Message:   message,
		RequestID: requestID,
	}
}
