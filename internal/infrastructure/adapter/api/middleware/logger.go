package middleware

import (
	"time"

	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/requestid"
	"github.com/gin-gonic/gin"
)

// Logger writes one access entry per request once the handler chain returns.
// 5xx responses log at error, 4xx at warn, the rest at info.
func Logger(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := map[string]any{
			"request_id": requestid.FromContext(c.Request.Context()),
			"method":     c.Request.Method,
			"route":      c.FullPath(),
			"uri":        c.Request.URL.RequestURI(),
			"status":     status,
			"bytes":      c.Writer.Size(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if actor, ok := ActorFromContext(c); ok {
			entry["actor_id"] = actor.ID
			entry["role"] = string(actor.Role)
		}
		if errors := c.Errors.ByType(gin.ErrorTypeAny); len(errors) > 0 {
			entry["errors"] = errors.Errors()
		}

		log := logger.Info
		switch {
		case status >= 500:
			log = logger.Error
		case status >= 400:
			log = logger.Warn
		}
		log("HTTP request", entry)
	}
}
