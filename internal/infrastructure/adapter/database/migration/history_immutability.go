package migration

import (
	"context"
	"fmt"

	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"gorm.io/gorm"
)

// HistoryImmutability installs triggers that reject UPDATE and DELETE on validation_records
type HistoryImmutability struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewHistoryImmutability creates a new migration instance
func NewHistoryImmutability(db *gorm.DB, logger coreport.Logger) *HistoryImmutability {
	return &HistoryImmutability{
		db:     db,
		logger: logger,
	}
}

// Run executes the migration
func (m *HistoryImmutability) Run(ctx context.Context) error {
	dialect := m.db.Dialector.Name()
	m.logger.Info("Making validation_records append-only", map[string]any{
		"dialect": dialect,
	})

	var statements []string
	switch dialect {
	case dialectPostgres:
		statements = []string{
			`CREATE OR REPLACE FUNCTION reject_validation_record_change() RETURNS trigger AS $$
			BEGIN
				RAISE EXCEPTION 'validation_records is append-only';
			END;
			$$ LANGUAGE plpgsql`,
			`DROP TRIGGER IF EXISTS validation_records_append_only ON validation_records`,
			`CREATE TRIGGER validation_records_append_only
				BEFORE UPDATE OR DELETE ON validation_records
				FOR EACH ROW EXECUTE FUNCTION reject_validation_record_change()`,
		}
	case dialectSQLite:
		statements = []string{
			`CREATE TRIGGER IF NOT EXISTS validation_records_no_update
				BEFORE UPDATE ON validation_records
				BEGIN SELECT RAISE(ABORT, 'validation_records is append-only'); END`,
			`CREATE TRIGGER IF NOT EXISTS validation_records_no_delete
				BEFORE DELETE ON validation_records
				BEGIN SELECT RAISE(ABORT, 'validation_records is append-only'); END`,
		}
	default:
		m.logger.Warn("No append-only trigger for dialect", map[string]any{"dialect": dialect})
		return nil
	}

	for _, stmt := range statements {
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			m.logger.Error("Failed to install append-only trigger", map[string]any{"error": err.Error()})
			return fmt.Errorf("history immutability migration: %w", err)
		}
	}

	return nil
}
