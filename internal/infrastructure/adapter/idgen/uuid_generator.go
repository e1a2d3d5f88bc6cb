package idgen

import (
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/google/uuid"
)

// UUIDGenerator issues time-ordered UUIDv7 identifiers
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUID generator
func NewUUIDGenerator() core.IDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a new UUIDv7, falling back to a random UUIDv4 if the clock source fails
func (g *UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// IsValid reports whether s parses as a UUID
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
