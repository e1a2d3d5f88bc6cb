package model

import (
	"time"
)

// TransactionLock represents a lease on a transaction held by one transition
type TransactionLock struct {
	TransactionID string    `gorm:"primaryKey;size:64"`
	Owner         string    `gorm:"not null;size:64"`
	LockedAt      time.Time `gorm:"not null"`
	ExpiresAt     time.Time `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for TransactionLock
func (TransactionLock) TableName() string {
	return "transaction_locks"
}
