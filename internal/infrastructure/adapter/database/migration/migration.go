package migration

import (
	"context"
	"errors"
	"fmt"

	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite"
)

// step is a single ordered schema change
type step struct {
	version     string
	description string
	apply       func(ctx context.Context, db *gorm.DB, logger coreport.Logger) error
}

// steps are applied in order; a recorded version is never re-applied.
var steps = []step{
	{
		version:     "1.0.0",
		description: "transactions, validation_records and transaction_locks tables",
		apply: func(ctx context.Context, db *gorm.DB, _ coreport.Logger) error {
			return db.WithContext(ctx).AutoMigrate(
				&model.Transaction{},
				&model.ValidationRecord{},
				&model.TransactionLock{},
			)
		},
	},
	{
		version:     "1.1.0",
		description: "append-only triggers on validation_records",
		apply: func(ctx context.Context, db *gorm.DB, logger coreport.Logger) error {
			return NewHistoryImmutability(db, logger).Run(ctx)
		},
	},
	{
		version:     "1.2.0",
		description: "postgres partial indexes and statistics",
		apply: func(ctx context.Context, db *gorm.DB, logger coreport.Logger) error {
			if db.Dialector.Name() != dialectPostgres {
				return nil
			}
			mgr := NewAdvancedIndexManager(db, logger)
			if err := mgr.CreateAdvancedIndexes(ctx); err != nil {
				return err
			}
			mgr.CreatePerformanceTweaks(ctx)
			return nil
		},
	},
}

// LatestVersion is the version of the last known schema step
func LatestVersion() string {
	return steps[len(steps)-1].version
}

// MigrationManager applies pending schema steps and records each one
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MigrateAll applies every step not yet recorded in migration_versions
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	dialect := m.db.Dialector.Name()
	if err := m.db.WithContext(ctx).AutoMigrate(&model.MigrationVersion{}); err != nil {
		return fmt.Errorf("create migration_versions: %w", err)
	}

	applied, err := m.AppliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("read applied versions: %w", err)
	}

	pending := 0
	for _, s := range steps {
		if applied[s.version] {
			continue
		}
		pending++

		m.logger.Info("Applying schema step", map[string]any{
			"version":     s.version,
			"description": s.description,
			"dialect":     dialect,
		})
		if err := s.apply(ctx, m.db, m.logger); err != nil {
			m.logger.Error("Schema step failed", map[string]any{
				"version": s.version,
				"error":   err.Error(),
			})
			return fmt.Errorf("schema step %s: %w", s.version, err)
		}
		if err := m.record(ctx, s, dialect); err != nil {
			return fmt.Errorf("record schema step %s: %w", s.version, err)
		}
	}

	m.logger.Info("Database schema up to date", map[string]any{
		"version": LatestVersion(),
		"applied": pending,
	})
	return nil
}

// AppliedVersions returns the set of recorded step versions
func (m *MigrationManager) AppliedVersions(ctx context.Context) (map[string]bool, error) {
	var rows []model.MigrationVersion
	if err := m.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	applied := make(map[string]bool, len(rows))
	for _, r := range rows {
		applied[r.Version] = true
	}
	return applied, nil
}

// GetCurrentVersion returns the most recently applied version, or "" on a fresh database
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	var row model.MigrationVersion
	err := m.db.WithContext(ctx).Order("id desc").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.Version, nil
}

func (m *MigrationManager) record(ctx context.Context, s step, dialect string) error {
	return m.db.WithContext(ctx).Create(&model.MigrationVersion{
		Version:     s.version,
		Description: s.description,
		Dialect:     dialect,
		AppliedAt:   m.timeProvider.Now(),
	}).Error
}
