package idgen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator(t *testing.T) {
	g := NewUUIDGenerator()

	first := g.NewID()
	second := g.NewID()

	assert.NotEqual(t, first, second)
	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.True(t, IsValid(second))
	assert.False(t, IsValid("not-a-uuid"))
	// v7 identifiers sort by creation time
	assert.LessOrEqual(t, first, second)
}
