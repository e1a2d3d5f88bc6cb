package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents the database model for bookkeeping transactions
type Transaction struct {
	ID               string          `gorm:"primaryKey;size:64"`
	Date             time.Time       `gorm:"not null;index"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Type             string          `gorm:"not null;size:16;index"`
	Nature           string          `gorm:"size:255"`
	Description      string          `gorm:"type:text"`
	DepartmentID     *string         `gorm:"size:64"`
	ProjectID        *string         `gorm:"size:64"`
	AccountID        *string         `gorm:"size:64"`
	StakeholderID    *string         `gorm:"size:64"`
	AssociateID      *string         `gorm:"size:64"`
	CreatedBy        string          `gorm:"not null;size:64;index"`
	ValidationStatus string          `gorm:"not null;size:32;index"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
