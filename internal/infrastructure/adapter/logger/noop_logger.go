package logger

import (
	"sync/atomic"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
)

// NoopLogger drops every entry. Tests use it where log output is noise.
type NoopLogger struct {
	level *atomic.Int32
}

// NewNoopLogger creates a logger that writes nothing
func NewNoopLogger() core.Logger {
	level := &atomic.Int32{}
	level.Store(int32(core.LogLevelInfo))
	return NoopLogger{level: level}
}

// SetLevel records level so GetLevel can report it
func (l NoopLogger) SetLevel(level core.LogLevel) { l.level.Store(int32(level)) }

// GetLevel returns the last level set
func (l NoopLogger) GetLevel() core.LogLevel { return core.LogLevel(l.level.Load()) }

func (NoopLogger) Debug(string, map[string]any) {}
func (NoopLogger) Info(string, map[string]any)  {}
func (NoopLogger) Warn(string, map[string]any)  {}
func (NoopLogger) Error(string, map[string]any) {}

// With returns l; there is nothing to bind fields to
func (l NoopLogger) With(map[string]any) core.Logger { return l }

// Flush is a no-op
func (NoopLogger) Flush() error { return nil }
