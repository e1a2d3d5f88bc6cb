package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	timeprovider "github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/time"
)

// NewTestManager connects to a migrated in-memory sqlite database private to t
func NewTestManager(t *testing.T, logger coreport.Logger) *Manager {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	config := &Config{
		Driver:        DriverSQLite,
		Path:          ":memory:",
		Database:      fmt.Sprintf("%s_%d", name, time.Now().UnixNano()),
		MaxOpenConns:  1,
		MaxIdleConns:  1,
		QueryTimeout:  5 * time.Second,
		LogLevel:      "silent",
		RetryAttempts: 0,
	}

	manager := NewManager(config, logger, timeprovider.NewRealTimeProvider(), nil)
	if _, err := manager.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	if err := manager.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return manager
}
