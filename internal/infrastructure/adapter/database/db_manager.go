package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/repository"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// poolCheckInterval is how often the pool watcher pings
const poolCheckInterval = 30 * time.Second

// Manager manages database connections
type Manager struct {
	config       *Config
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	observer     QueryObserver
	poolWatcher  *PoolWatcher
}

// NewManager creates a new database manager. observer may be nil.
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider, observer QueryObserver) *Manager {
	return &Manager{
		config:       config,
		logger:       logger.With(map[string]any{"component": "database", "driver": config.Driver}),
		timeProvider: timeProvider,
		observer:     observer,
	}
}

// Connect establishes a database connection, retrying as configured
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	if err := m.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	m.logger.Info("Connecting to database", map[string]any{
		"driver": m.config.Driver,
		"host":   m.config.Host,
		"name":   m.config.Database,
		"path":   m.config.Path,
	})

	gormConfig := &gorm.Config{
		Logger: NewDatabaseLogger(m.logger, m.timeProvider, m.config.LogLevel, m.observer),
		NowFunc: func() time.Time {
			return m.timeProvider.Now()
		},
		TranslateError: true,
		PrepareStmt:    m.config.Driver == DriverPostgres,
	}

	var gormDB *gorm.DB
	var err error
	attempts := m.config.RetryAttempts + 1

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			m.logger.Warn("Retrying database connection", map[string]any{
				"attempt": attempt + 1,
				"of":      attempts,
				"delay":   m.config.RetryDelay.String(),
			})
			select {
			case <-time.After(m.config.RetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		gormDB, err = gorm.Open(m.dialector(), gormConfig)
		if err == nil {
			break
		}

		m.logger.Error("Failed to connect to database", map[string]any{
			"error":   err.Error(),
			"attempt": attempt + 1,
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	maxOpen := m.config.MaxOpenConns
	if m.config.IsInMemory() {
		// every connection to a shared in-memory database contends for one table lock
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)
	if m.config.IsInMemory() {
		// closing the last connection drops the database
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
	}

	m.db = gormDB
	m.poolWatcher = NewPoolWatcher(sqlDB, m.logger, m.config.QueryTimeout)
	m.poolWatcher.Start(poolCheckInterval)

	m.logger.Info("Successfully connected to database", map[string]any{
		"driver":          m.config.Driver,
		"max_open_conns":  maxOpen,
		"max_idle_conns":  m.config.MaxIdleConns,
		"query_timeout_s": m.config.QueryTimeout.Seconds(),
	})

	return m.db, nil
}

func (m *Manager) dialector() gorm.Dialector {
	if m.config.Driver == DriverSQLite {
		return sqlite.Open(m.config.DSN())
	}
	return postgres.Open(m.config.DSN())
}

// Migrate brings the schema to the current version
func (m *Manager) Migrate(ctx context.Context) error {
	return migration.NewMigrationManager(m.db, m.logger, m.timeProvider).MigrateAll(ctx)
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Ping checks the database is reachable
func (m *Manager) Ping(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := m.WithTimeout(ctx)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// SQLDB returns the pool behind the GORM handle, or nil before Connect
func (m *Manager) SQLDB() *sql.DB {
	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return nil
	}
	return sqlDB
}

// Healthy reports the pool watcher's last ping result
func (m *Manager) Healthy() bool {
	return m.poolWatcher != nil && m.poolWatcher.Healthy()
}

// Close closes the database connection
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection", nil)

	if m.poolWatcher != nil {
		m.poolWatcher.Stop()
	}
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	return sqlDB.Close()
}

// WithTimeout returns a context with timeout for database operations
func (m *Manager) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.config.QueryTimeout)
}

// CreateUnitOfWork creates a new UnitOfWork instance
func (m *Manager) CreateUnitOfWork() *UnitOfWork {
	return NewUnitOfWork(m.db, m.logger, m.timeProvider)
}

// CreateLockRepository creates the table-backed transaction lock
func (m *Manager) CreateLockRepository() *repository.TransactionLockRepository {
	return repository.NewTransactionLockRepository(m.db, m.timeProvider, m.logger)
}

// CreateTransactionRepository creates a transaction repository outside any unit of work
func (m *Manager) CreateTransactionRepository() *repository.TransactionRepository {
	return repository.NewTransactionRepository(m.db, m.timeProvider, m.logger)
}
