package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestBuildConfig(t *testing.T) {
	t.Run("prod is json with service fields", func(t *testing.T) {
		zc := buildConfig(LoggerConfig{Level: "info", Stage: "prod"})
		assert.Equal(t, "json", zc.Encoding)
		assert.Equal(t, "churn-api", zc.InitialFields["service"])
		assert.Equal(t, "prod", zc.InitialFields["stage"])
		assert.True(t, zc.DisableStacktrace)
	})

	t.Run("prod keeps stacktraces at debug", func(t *testing.T) {
		zc := buildConfig(LoggerConfig{Level: "debug", Stage: "prod"})
		assert.False(t, zc.DisableStacktrace)
	})

	t.Run("local is console", func(t *testing.T) {
		zc := buildConfig(LoggerConfig{Level: "warn", Stage: "local"})
		assert.Equal(t, "console", zc.Encoding)
		assert.Equal(t, zapcore.WarnLevel, zc.Level.Level())
		assert.Nil(t, zc.InitialFields)
	})

	t.Run("json can be forced outside prod", func(t *testing.T) {
		zc := buildConfig(LoggerConfig{Stage: "dev", EnableJSON: true})
		assert.Equal(t, "json", zc.Encoding)
	})

	t.Run("output paths override", func(t *testing.T) {
		zc := buildConfig(LoggerConfig{Stage: "local", OutputPaths: []string{"stdout"}})
		assert.Equal(t, []string{"stdout"}, zc.OutputPaths)
	})
}

func TestInitLoggerWithConfig_ReplacesGlobal(t *testing.T) {
	previous := Log
	t.Cleanup(func() { Log = previous })

	InitLoggerWithConfig(LoggerConfig{Level: "error", Stage: "test"})
	require.NotNil(t, Log)
	assert.False(t, Log.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, Log.Core().Enabled(zapcore.ErrorLevel))
	assert.NotSame(t, previous, Log)
}

func TestNew_RejectsBadOutput(t *testing.T) {
	_, err := New(LoggerConfig{OutputPaths: []string{"unknown-scheme://nowhere"}})
	assert.Error(t, err)
}
