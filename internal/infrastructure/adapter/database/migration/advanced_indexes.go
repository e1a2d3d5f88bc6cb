package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"gorm.io/gorm"
)

// AdvancedIndexManager manages PostgreSQL-specific advanced indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

type indexDefinition struct {
	name string
	sql  string
}

var advancedIndexes = []indexDefinition{
	{
		// Review queues list pending transactions by status
		name: "idx_transactions_pending",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_pending
			ON transactions (validation_status, created_at DESC)
			WHERE validation_status IN ('submitted', 'raf_validated', 'dg_validated')`,
	},
	{
		name: "idx_transactions_created_by_status",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_created_by_status
			ON transactions (created_by, validation_status)`,
	},
	{
		name: "idx_validation_records_created_at_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_validation_records_created_at_brin
			ON validation_records USING BRIN (created_at)
			WITH (pages_per_range = 32)`,
	},
	{
		name: "idx_transaction_locks_expires_at",
		sql: `CREATE INDEX IF NOT EXISTS idx_transaction_locks_expires_at
			ON transaction_locks (expires_at)`,
	},
}

// CreateAdvancedIndexes creates advanced PostgreSQL indexes for better performance
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	for _, idx := range advancedIndexes {
		if err := m.db.WithContext(ctx).Exec(idx.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// CreatePerformanceTweaks applies PostgreSQL performance tweaks. Failures are logged only.
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// status updates rewrite rows in place; leave room for HOT updates
	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE transactions SET (fillfactor = 90)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for transactions table", map[string]any{
			"error": err.Error(),
		})
	}

	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE validation_records ALTER COLUMN transaction_id SET STATISTICS 1000`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for transaction_id", map[string]any{
			"error": err.Error(),
		})
	}
}
