package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/bookkeeping-validation/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() TransactionParams {
	dept := " dept-1 "
	empty := ""
	return TransactionParams{
		ID:           "tx-1",
		Date:         time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Amount:       "250.50",
		Type:         string(TypeExpense),
		Nature:       " office supplies ",
		Description:  "printer paper",
		DepartmentID: &dept,
		ProjectID:    &empty,
	}
}

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()
	creator := Actor{ID: "user-1", Role: RoleComptable}

	t.Run("Valid transaction creation", func(t *testing.T) {
		tx, err := NewTransaction(validParams(), creator, mockTime)

		require.NoError(t, err)
		assert.Equal(t, "tx-1", tx.ID)
		assert.Equal(t, StatusDraft, tx.ValidationStatus)
		assert.Equal(t, "250.50", tx.FormattedAmount())
		assert.Equal(t, "office supplies", tx.Nature)
		assert.Equal(t, "user-1", tx.CreatedBy)
		require.NotNil(t, tx.DepartmentID)
		assert.Equal(t, "dept-1", *tx.DepartmentID)
		assert.Nil(t, tx.ProjectID)
		assert.Equal(t, fixedTime, tx.CreatedAt)
		assert.Equal(t, fixedTime, tx.UpdatedAt)
		assert.True(t, tx.IsExpense())
		assert.False(t, tx.IsIncome())
		assert.True(t, tx.IsEditable())
	})

	t.Run("Observer roles cannot record", func(t *testing.T) {
		for _, role := range []Role{RoleCabinet, RoleAuditeur} {
			tx, err := NewTransaction(validParams(), Actor{ID: "obs", Role: role}, mockTime)
			assert.ErrorIs(t, err, errs.ErrForbidden)
			assert.Nil(t, tx)
		}
	})

	t.Run("Invalid input", func(t *testing.T) {
		testCases := []struct {
			name   string
			mutate func(p *TransactionParams)
			err    error
		}{
			{"empty id", func(p *TransactionParams) { p.ID = " " }, errs.ErrInvalidTransactionID},
			{"zero date", func(p *TransactionParams) { p.Date = time.Time{} }, errs.ErrInvalidDate},
			{"bad type", func(p *TransactionParams) { p.Type = "transfer" }, errs.ErrInvalidTransactionType},
			{"negative amount", func(p *TransactionParams) { p.Amount = "-3" }, errs.ErrNegativeAmount},
			{"bad amount", func(p *TransactionParams) { p.Amount = "3.141" }, errs.ErrInvalidAmount},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				p := validParams()
				tc.mutate(&p)
				tx, err := NewTransaction(p, creator, mockTime)
				assert.ErrorIs(t, err, tc.err)
				assert.Nil(t, tx)
			})
		}
	})

	t.Run("Invalid creator", func(t *testing.T) {
		_, err := NewTransaction(validParams(), Actor{ID: "", Role: RoleAdmin}, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidActor)
	})
}
