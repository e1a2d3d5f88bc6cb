package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/usecase/authorization"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/usecase/workflow"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/idgen"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/lock"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/memory"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/metrics"
	timeprovider "github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// lockCleanupInterval is how often expired database leases are purged
const lockCleanupInterval = time.Minute

// persistenceLayer is the storage selected by configuration
type persistenceLayer struct {
	uow          persistence.UnitOfWork
	transactions persistence.TransactionRepository
	locks        persistence.TransactionLockRepository
	health       handler.Pinger
	closers      []func() error
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := logger.NewZapLogger(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		CallerInfo: cfg.Logger.CallerInfo,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Flush() }()
	appLogger = appLogger.With(map[string]any{
		"service": "bookkeeping-validation",
		"env":     cfg.Environment,
	})

	tp := timeprovider.NewRealTimeProvider()
	ids := idgen.NewUUIDGenerator()
	promMetrics := metrics.NewPrometheusMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := setupPersistence(ctx, cfg, appLogger, tp, promMetrics)
	if err != nil {
		appLogger.Error("Failed to set up persistence", map[string]any{
			"driver": cfg.Database.Driver,
			"error":  err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		for i := len(store.closers) - 1; i >= 0; i-- {
			if err := store.closers[i](); err != nil {
				appLogger.Warn("Failed to close resource", map[string]any{"error": err.Error()})
			}
		}
	}()

	workflowService := workflow.NewWorkflowService(
		store.uow,
		store.locks,
		authorization.NewAuthority(),
		ids,
		tp,
		promMetrics,
		appLogger,
	).WithLockTimeout(cfg.Transaction.LockTimeout())

	transactionService := transaction.NewTransactionUseCase(store.transactions, ids, tp, promMetrics, appLogger)

	var rateLimiter *limiter.Limiter
	if cfg.RateLimit.Enabled {
		rateLimiter, err = middleware.NewRateLimiter(cfg.RateLimit.Rate)
		if err != nil {
			appLogger.Error("Failed to create rate limiter", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}

	opts := routes.Options{
		Auth:        cfg.Auth,
		CORS:        cfg.CORS,
		RateLimiter: rateLimiter,
		HTTPMetrics: promMetrics,
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = promMetrics.Handler()
		opts.MetricsPath = cfg.Metrics.Path
	}

	router := routes.NewRouter(routes.Handlers{
		Transactions: handler.NewTransactionHandler(transactionService, appLogger),
		Workflow:     handler.NewWorkflowHandler(workflowService, appLogger),
		Health:       handler.NewHealthHandler(store.health, appLogger),
	}, opts, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":         server.Addr,
			"env":          cfg.Environment,
			"driver":       cfg.Database.Driver,
			"lock_backend": cfg.Transaction.LockBackend,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		appLogger.Info("Shutting down server...", nil)
	case err := <-serverErr:
		appLogger.Error("Failed to start server", map[string]any{"error": err.Error()})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// setupPersistence builds the store and lock backend named by the configuration
func setupPersistence(
	ctx context.Context,
	cfg *config.Config,
	appLogger coreport.Logger,
	tp coreport.TimeProvider,
	promMetrics *metrics.PrometheusMetrics,
) (*persistenceLayer, error) {
	layer := &persistenceLayer{}
	var dbManager *database.Manager

	switch cfg.Database.Driver {
	case database.DriverMemory:
		memStore := memory.NewStore()
		layer.uow = memory.NewUnitOfWork(memStore, tp, appLogger)
		layer.transactions = memory.NewTransactionRepository(memStore, tp)
		appLogger.Warn("Using in-memory persistence; data is lost on restart", nil)

	case database.DriverPostgres, database.DriverSQLite:
		dbManager = database.NewManager(database.NewConfig(cfg), appLogger, tp, promMetrics)
		if _, err := dbManager.Connect(ctx); err != nil {
			return nil, err
		}
		layer.closers = append(layer.closers, dbManager.Close)

		if err := dbManager.Migrate(ctx); err != nil {
			return layer, fmt.Errorf("failed to run migrations: %w", err)
		}
		if err := promMetrics.RegisterDBStats(dbManager.SQLDB(), cfg.Database.Driver); err != nil {
			appLogger.Warn("Failed to export connection pool metrics", map[string]any{"error": err.Error()})
		}
		layer.uow = dbManager.CreateUnitOfWork()
		layer.transactions = dbManager.CreateTransactionRepository()
		layer.health = dbManager

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	switch cfg.Transaction.LockBackend {
	case "memory":
		layer.locks = memory.NewLockRepository(tp)

	case "redis":
		client, err := lock.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return layer, err
		}
		layer.closers = append(layer.closers, client.Close)
		layer.locks = lock.NewRedisLockRepository(client, cfg.Redis.KeyPrefix, appLogger)

	case "database", "":
		if dbManager == nil {
			layer.locks = memory.NewLockRepository(tp)
			appLogger.Warn("Database lock backend requires a database; using in-process locks", nil)
			break
		}
		lockRepo := dbManager.CreateLockRepository()
		layer.locks = lockRepo
		go cleanupExpiredLocks(ctx, lockRepo, appLogger)

	default:
		return layer, fmt.Errorf("unsupported lock backend %q", cfg.Transaction.LockBackend)
	}

	return layer, nil
}

// lockCleaner purges expired leases
type lockCleaner interface {
	CleanupExpiredLocks(ctx context.Context) (int64, error)
}

// cleanupExpiredLocks periodically deletes leases left behind by crashed holders
func cleanupExpiredLocks(ctx context.Context, cleaner lockCleaner, appLogger coreport.Logger) {
	ticker := time.NewTicker(lockCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := cleaner.CleanupExpiredLocks(ctx); err != nil && ctx.Err() == nil {
				appLogger.Warn("Failed to clean up expired locks", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}

	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}

	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	switch cfg.Database.Driver {
	case database.DriverPostgres:
		if cfg.Database.Host == "" {
			missingConfigs = append(missingConfigs, "database.host (or BV_DB_HOST environment variable)")
		}
		if cfg.Database.Username == "" {
			missingConfigs = append(missingConfigs, "database.username (or BV_DB_USERNAME environment variable)")
		}
		if cfg.Database.Database == "" {
			missingConfigs = append(missingConfigs, "database.database (or BV_DB_NAME environment variable)")
		}
	case database.DriverSQLite:
		if cfg.Database.Path == "" {
			missingConfigs = append(missingConfigs, "database.path (or BV_DB_PATH environment variable)")
		}
	case database.DriverMemory:
	default:
		return fmt.Errorf("invalid database driver: %q, must be one of: %s, %s, or %s",
			cfg.Database.Driver, database.DriverPostgres, database.DriverSQLite, database.DriverMemory)
	}

	if cfg.Transaction.LockTimeoutMs <= 0 {
		missingConfigs = append(missingConfigs, "transaction.lockTimeoutMs")
	}

	if cfg.Transaction.LockBackend == "redis" && cfg.Redis.Addr == "" {
		missingConfigs = append(missingConfigs, "redis.addr (or BV_REDIS_ADDR environment variable)")
	}

	if cfg.Auth.JWTSecret == "" {
		missingConfigs = append(missingConfigs, "auth.jwtSecret (or BV_AUTH_JWT_SECRET environment variable)")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Environment == config.Production {
		var warnings []string

		if cfg.Database.Driver == database.DriverPostgres {
			mode := strings.ToLower(cfg.Database.SSLMode)
			if mode != "require" && mode != "verify-ca" && mode != "verify-full" {
				warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
			}
		}

		if cfg.Database.Driver == database.DriverMemory {
			warnings = append(warnings, "database.driver memory keeps no data across restarts")
		}

		if len(cfg.Auth.JWTSecret) < 32 {
			warnings = append(warnings, "auth.jwtSecret should be at least 32 bytes in production")
		}

		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
