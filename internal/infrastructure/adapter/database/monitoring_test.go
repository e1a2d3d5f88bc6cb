package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryLabel(t *testing.T) {
	testCases := []struct {
		sql      string
		expected string
	}{
		{`SELECT * FROM "transactions" WHERE id = $1`, "SELECT transactions"},
		{`INSERT INTO "validation_records" ("id") VALUES ($1)`, "INSERT validation_records"},
		{`UPDATE "transactions" SET "validation_status"=$1`, "UPDATE transactions"},
		{`DELETE FROM transaction_locks WHERE expires_at < $1`, "DELETE transaction_locks"},
		{`BEGIN`, "OTHER"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, queryLabel(tc.sql))
		})
	}
}
