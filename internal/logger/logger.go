// Package logger holds the process-wide structured logger.
package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu sync.RWMutex
	l  = zap.NewNop()
)

// Options configures the logger initialization.
type Options struct {
	Enabled bool          // If false, all logging is discarded
	Level   zapcore.Level // Minimum level. Default: InfoLevel
	JSON    bool          // JSON lines instead of console text
	Path    string        // Log file. Default: stderr
}

// L returns the current logger. It discards everything until Init enables it.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return l
}

// Set replaces the logger, for callers that build their own.
func Set(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mu.Lock()
	l = logger
	mu.Unlock()
}

// Init configures logging. Call from main() before any log calls. The
// returned func flushes and closes the log output.
func Init(opts Options) (func(), error) {
	if !opts.Enabled {
		Set(nil)
		return func() {}, nil
	}

	sink := zapcore.Lock(os.Stderr)
	closeSink := func() {}
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		sink = zapcore.Lock(f)
		closeSink = func() { _ = f.Close() }
	}

	built := zap.New(zapcore.NewCore(newEncoder(opts.JSON), sink, opts.Level))
	Set(built)
	return func() {
		_ = built.Sync()
		closeSink()
	}, nil
}

func newEncoder(json bool) zapcore.Encoder {
	if json {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return zapcore.NewConsoleEncoder(cfg)
}

// Debug logs a debug message with structured fields.
func Debug(msg string, fields ...zap.Field) { L().Debug(msg, fields...) }

// Info logs an info message with structured fields.
func Info(msg string, fields ...zap.Field) { L().Info(msg, fields...) }

// Warn logs a warning message with structured fields.
func Warn(msg string, fields ...zap.Field) { L().Warn(msg, fields...) }

// Error logs an error message with structured fields.
func Error(msg string, fields ...zap.Field) { L().Error(msg, fields...) }
