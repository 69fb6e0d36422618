package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zapcore.Level
	}{
		{"debug", "debug", zapcore.DebugLevel},
		{"warn", "warn", zapcore.WarnLevel},
		{"invalid falls back to info", "loud", zapcore.InfoLevel},
		{"empty falls back to info", "", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(Config{Level: tt.level, Format: "json"})
			require.NotNil(t, log)
			assert.True(t, log.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestInit(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	require.NoError(t, Init(Config{Level: "debug", Format: "console"}))
	assert.True(t, Log.Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init(Config{Level: "error"}))
	assert.False(t, Log.Core().Enabled(zapcore.WarnLevel))
}

func TestWithRunAndDataset(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	WithDataset(WithRunID(base, "run-1"), "HelloWorld", "INTENSITY").Info("saved")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "run-1", fields["run_id"])
	assert.Equal(t, "HelloWorld", fields["dataset"])
	assert.Equal(t, "INTENSITY", fields["dataset_type"])
}

func TestGlobalHelpers(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	core, logs := observer.New(zapcore.DebugLevel)
	Log = zap.New(core)

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")

	require.Equal(t, 4, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[3].Level)
}
