package middleware

import (
	"fmt"
	"io"
	"net/http"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/requestid"
	"github.com/gin-gonic/gin"
)

// ErrorHandler turns a handler panic into a 500 with the generic internal error body.
// gin's own recovery output is discarded; the panic is logged through logger instead.
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		reqID := requestid.FromContext(c.Request.Context())
		logger.Error("Recovered from handler panic", map[string]any{
			"panic":      fmt.Sprint(recovered),
			"route":      c.FullPath(),
			"method":     c.Request.Method,
			"request_id": reqID,
			"client_ip":  c.ClientIP(),
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(errs.ErrInternalServer, reqID))
	})
}
