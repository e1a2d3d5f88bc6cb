package logger

import (
	"testing"

	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, core.LogLevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, core.LogLevelWarn, ParseLevel("warning"))
	assert.Equal(t, core.LogLevelError, ParseLevel(" error "))
	assert.Equal(t, core.LogLevelInfo, ParseLevel("verbose"))
}

func TestZapLoggerFieldsAndLevels(t *testing.T) {
	zapCore, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(zapCore), core.LogLevelInfo)

	l.Debug("hidden", nil)
	l.Info("Transaction transitioned", map[string]any{"transaction_id": "tx-1", "to_status": "submitted"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Transaction transitioned", entry.Message)
	assert.Equal(t, "tx-1", entry.ContextMap()["transaction_id"])

	l.SetLevel(core.LogLevelError)
	assert.Equal(t, core.LogLevelError, l.GetLevel())
	l.Warn("dropped", nil)
	l.Error("kept", map[string]any{"error": "boom"})

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "kept", logs.All()[1].Message)
}

func TestZapLoggerWith(t *testing.T) {
	zapCore, logs := observer.New(zapcore.DebugLevel)
	parent := NewFromZap(zap.New(zapCore), core.LogLevelInfo)
	child := parent.With(map[string]any{"component": "database"})

	child.Info("connected", map[string]any{"driver": "sqlite"})
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "database", logs.All()[0].ContextMap()["component"])
	assert.Equal(t, "sqlite", logs.All()[0].ContextMap()["driver"])

	parent.SetLevel(core.LogLevelError)
	assert.Equal(t, core.LogLevelError, child.GetLevel())
	child.Warn("dropped", nil)
	assert.Equal(t, 1, logs.Len())

	assert.Same(t, parent, parent.With(nil))
}

func TestNewZapLogger(t *testing.T) {
	l, err := NewZapLogger(Options{Level: "warn", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	assert.Equal(t, core.LogLevelWarn, l.GetLevel())
	l.Info("not emitted", nil)
}

func TestNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	l.SetLevel(core.LogLevelDebug)
	assert.Equal(t, core.LogLevelDebug, l.GetLevel())
	l.Error("ignored", nil)
	assert.Equal(t, core.LogLevelDebug, l.With(map[string]any{"k": "v"}).GetLevel())
	assert.NoError(t, l.Flush())
}
