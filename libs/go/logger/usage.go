package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// UsageTimeLayout matches the asctime layout operators already grep for.
const UsageTimeLayout = "2006-01-02 15:04:05,000"

// UsageLogger appends one line per API call to a local file:
//
//	<timestamp>:<LEVEL>:<message>
type UsageLogger struct {
	log  *zap.Logger
	file *os.File
}

// NewUsageLogger opens (or creates) path in append mode.
func NewUsageLogger(path string) (*UsageLogger, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create usage log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open usage log %s: %w", path, err)
	}

	u := NewUsageLoggerWithWriter(f)
	u.file = f
	return u, nil
}

// NewUsageLoggerWithWriter builds a usage logger on top of an arbitrary writer.
func NewUsageLoggerWithWriter(w io.Writer) *UsageLogger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:          "asctime",
		LevelKey:         "levelname",
		MessageKey:       "message",
		EncodeTime:       zapcore.TimeEncoderOfLayout(UsageTimeLayout),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: ":",
		LineEnding:       zapcore.DefaultLineEnding,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		zapcore.InfoLevel,
	)

	return &UsageLogger{log: zap.New(core)}
}

// Accessed records that username called endpoint with payload.
func (u *UsageLogger) Accessed(username, endpoint string, payload interface{}) {
	if u == nil {
		return
	}
	u.log.Info(fmt.Sprintf("User %s accessed the %s endpoint with data %s", username, endpoint, formatPayload(payload)))
}

// PredictionError records the detail of a failure that was hidden from the client.
func (u *UsageLogger) PredictionError(err error) {
	if u == nil || err == nil {
		return
	}
	u.log.Error("Error during prediction: " + err.Error())
}

// Close flushes and closes the underlying file, if any.
func (u *UsageLogger) Close() error {
	if u == nil {
		return nil
	}
	_ = u.log.Sync()
	if u.file != nil {
		return u.file.Close()
	}
	return nil
}

func formatPayload(payload interface{}) string {
	if s, ok := payload.(fmt.Stringer); ok {
		return s.String()
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%+v", payload)
	}
	return string(b)
}
