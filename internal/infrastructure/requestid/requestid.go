// Package requestid carries the per-request correlation identifier through contexts
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header carrying the request identifier
const Header = "X-Request-ID"

type contextKey struct{}

// New returns a fresh request identifier
func New() string {
	return uuid.NewString()
}

// WithRequestID stores id in ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request identifier stored in ctx, or ""
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
