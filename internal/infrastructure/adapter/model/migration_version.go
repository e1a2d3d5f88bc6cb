package model

import "time"

// MigrationVersion is one applied schema step. Rows are written once and never updated.
type MigrationVersion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Version     string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Description string    `gorm:"type:varchar(255);not null"`
	Dialect     string    `gorm:"type:varchar(20);not null"`
	AppliedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for the migration version model
func (MigrationVersion) TableName() string {
	return "migration_versions"
}
