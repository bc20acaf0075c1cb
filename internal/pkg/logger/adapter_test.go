package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLogger_InstallsDefault(t *testing.T) {
	zl, err := InitLogger("info")
	require.NoError(t, err)
	require.NotNil(t, zl)
	assert.False(t, zl.Core().Enabled(zapcore.DebugLevel))

	l := NewSlogAdapter()
	assert.NotPanics(t, func() {
		l.Info("info message", "k", "v")
		l.Debug("debug message")
		l.Warn("warn message")
		l.Error("error message", "error", "boom")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("ERROR"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
}

func TestSlogAdapter_BindsFields(t *testing.T) {
	prev := globalLogger
	t.Cleanup(func() { globalLogger = prev })

	core, logs := observer.New(zapcore.DebugLevel)
	globalLogger = slog.New(zapslog.NewHandler(core))

	l := NewSlogAdapter("component", "portfolio")
	l.Warn("fetch failed", "chain", "Polygon")
	NewSlogAdapter().Info("plain")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "fetch failed", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, map[string]interface{}{"component": "portfolio", "chain": "Polygon"}, entries[0].ContextMap())
	assert.Empty(t, entries[1].ContextMap())
}
