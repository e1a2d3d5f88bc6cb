package handler

import (
	"fmt"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/requestid"
	"github.com/gin-gonic/gin"
)

// respondError writes err using the shared error taxonomy
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	reqID := requestid.FromContext(c.Request.Context())
	status := errs.HTTPStatus(err)

	if errs.Kind(err) == errs.KindInternal {
		logger.Error("Request failed", map[string]any{
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": reqID,
			"error":      err.Error(),
		})
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(err, reqID))
}

// bindingError marks a request binding failure as a client error
func bindingError(err error) error {
	return fmt.Errorf("%w: %s", errs.ErrInvalidRequest, err.Error())
}

// requireActor returns the authenticated actor or responds 401
func requireActor(c *gin.Context, logger coreport.Logger) (entity.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		respondError(c, logger, errs.ErrUnauthenticated)
		return entity.Actor{}, false
	}
	return actor, true
}
