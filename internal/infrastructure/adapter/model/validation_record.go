package model

import (
	"time"
)

// ValidationRecord represents one row of the append-only validation history
type ValidationRecord struct {
	Seq           int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	ID            string    `gorm:"uniqueIndex;not null;size:64"`
	TransactionID string    `gorm:"not null;size:64;index:idx_validation_records_tx_created,priority:1"`
	FromStatus    string    `gorm:"not null;size:32"`
	ToStatus      string    `gorm:"not null;size:32"`
	Action        string    `gorm:"not null;size:32"`
	ActorID       string    `gorm:"not null;size:64"`
	ActorRole     string    `gorm:"not null;size:32"`
	Comment       *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null;index:idx_validation_records_tx_created,priority:2"`
}

// TableName specifies the table name for ValidationRecord
func (ValidationRecord) TableName() string {
	return "validation_records"
}
