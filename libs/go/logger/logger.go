package logger

import (
	"strings"

	"github.com/churnlens/churn-api/libs/go/constants"
	"github.com/churnlens/churn-api/libs/go/helpers"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op until InitLogger runs, so
// packages can log unconditionally in tests and library code.
var Log = zap.NewNop()

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level       string   `json:"level"`
	Stage       string   `json:"stage"`
	EnableJSON  bool     `json:"enable_json"`
	EnableColor bool     `json:"enable_color"`
	OutputPaths []string `json:"output_paths"` // stderr when empty
}

// InitLogger configures Log for a deployment stage: JSON in prod, colored
// console output everywhere else. LOG_LEVEL overrides the level.
func InitLogger(stage string) {
	InitLoggerWithConfig(LoggerConfig{
		Level:       helpers.GetEnvWithDefault("LOG_LEVEL", "info"),
		Stage:       stage,
		EnableJSON:  stage == constants.ProdEnvironment,
		EnableColor: stage != constants.ProdEnvironment,
	})
}

// InitLoggerWithConfig replaces Log. It panics if zap rejects the config,
// which only happens for unusable output paths.
func InitLoggerWithConfig(config LoggerConfig) {
	l, err := New(config)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Log = l
}

// New builds a logger without touching the global one.
func New(config LoggerConfig) (*zap.Logger, error) {
	return buildConfig(config).Build()
}

func buildConfig(config LoggerConfig) zap.Config {
	level := ParseLevel(config.Level)

	var zc zap.Config
	if config.Stage == constants.ProdEnvironment || config.EnableJSON {
		zc = jsonConfig(config.Stage)
	} else {
		zc = consoleConfig(config.EnableColor)
	}

	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = config.Stage == constants.ProdEnvironment && level > zapcore.DebugLevel
	if len(config.OutputPaths) > 0 {
		zc.OutputPaths = config.OutputPaths
	}
	return zc
}

func jsonConfig(stage string) zap.Config {
	zc := zap.NewProductionConfig()
	zc.EncoderConfig.TimeKey = "timestamp"
	zc.EncoderConfig.MessageKey = "message"
	zc.EncoderConfig.LevelKey = "level"
	zc.EncoderConfig.CallerKey = "caller"
	zc.EncoderConfig.StacktraceKey = "stacktrace"
	zc.InitialFields = map[string]interface{}{
		"service": constants.ServiceName,
		"stage":   stage,
	}
	return zc
}

func consoleConfig(color bool) zap.Config {
	zc := zap.NewDevelopmentConfig()
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return zc
}

// ParseLevel maps a textual level to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case constants.ErrorLevel:
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func Info(msg string, fields ...zapcore.Field) {
	Log.Info(msg, fields...)
}

func Error(msg string, fields ...zapcore.Field) {
	Log.Error(msg, fields...)
}

func Debug(msg string, fields ...zapcore.Field) {
	Log.Debug(msg, fields...)
}

func Warn(msg string, fields ...zapcore.Field) {
	Log.Warn(msg, fields...)
}

// Fatal logs at FatalLevel and exits the process.
func Fatal(msg string, fields ...zapcore.Field) {
	Log.Fatal(msg, fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	return Log.Sync()
}
