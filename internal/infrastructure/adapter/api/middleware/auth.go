package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/requestid"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

// Claims are the identity claims issued by the external identity provider.
// The subject is the actor ID.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate verifies the HS256 bearer token and stores the resulting actor in the context.
// An empty issuer disables the issuer check.
func Authenticate(secret, issuer string, logger coreport.Logger) gin.HandlerFunc {
	key := []byte(secret)
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(c *gin.Context) {
		actor, err := actorFromRequest(c.Request, parser, key)
		if err != nil {
			logger.Warn("Authentication failed", map[string]any{
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
				"request_id": requestid.FromContext(c.Request.Context()),
				"error":      err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(err, requestid.FromContext(c.Request.Context())))
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

func actorFromRequest(r *http.Request, parser *jwt.Parser, key []byte) (entity.Actor, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return entity.Actor{}, fmt.Errorf("%w: authorization header required", errs.ErrUnauthenticated)
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return entity.Actor{}, fmt.Errorf("%w: authorization header format must be Bearer {token}", errs.ErrUnauthenticated)
	}

	claims := &Claims{}
	_, err := parser.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return entity.Actor{}, fmt.Errorf("%w: token has expired", errs.ErrUnauthenticated)
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return entity.Actor{}, fmt.Errorf("%w: token not valid yet", errs.ErrUnauthenticated)
		default:
			return entity.Actor{}, fmt.Errorf("%w: invalid token", errs.ErrUnauthenticated)
		}
	}

	actor, err := entity.NewActor(claims.Subject, claims.Role)
	if err != nil {
		return entity.Actor{}, fmt.Errorf("%w: invalid token claims", errs.ErrUnauthenticated)
	}
	return actor, nil
}

// ActorFromContext returns the authenticated actor of the request
func ActorFromContext(c *gin.Context) (entity.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return entity.Actor{}, false
	}
	actor, ok := v.(entity.Actor)
	return actor, ok
}
