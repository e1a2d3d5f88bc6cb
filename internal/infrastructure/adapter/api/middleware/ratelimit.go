package middleware

import (
	"fmt"
	"net/http"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/requestid"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewRateLimiter builds an in-process limiter from a formatted rate such as "60-M"
func NewRateLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit limits requests per actor, falling back to the client IP before authentication
func RateLimit(l *limiter.Limiter, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if actor, ok := ActorFromContext(c); ok {
			key = "actor:" + actor.ID
		}

		lctx, err := l.Get(c.Request.Context(), key)
		if err != nil {
			logger.Error("Failed to get rate limit context", map[string]any{
				"key":   key,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", lctx.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", lctx.Remaining))

		if lctx.Reached {
			logger.Warn("Rate limit exceeded", map[string]any{
				"key":   key,
				"limit": lctx.Limit,
			})
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error:     "rate_limited",
				Code:      errs.CodeRateLimited,
				Message:   "Too many requests. Please try again later.",
				RequestID: requestid.FromContext(c.Request.Context()),
			})
			return
		}

		c.Next()
	}
}
