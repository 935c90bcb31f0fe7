// Package debug provides conditional debug logging for mahar.
//
// Logging is off by default and every function is then a no-op. Set
// MAHAR_DEBUG to turn it on: "1" or "true" writes to mahar-debug.log in the
// temp directory, any other value is used as the log file path. The
// terminal belongs to the UI, so debug output never goes to stderr while
// browsing.
//
//	debug.Log("loaded %d articles", n)
//	defer debug.LogEnterExit("reload")()
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.SugaredLogger]

func init() {
	v := os.Getenv("MAHAR_DEBUG")
	if v == "" || v == "0" || strings.EqualFold(v, "false") {
		return
	}
	path := v
	if v == "1" || strings.EqualFold(v, "true") {
		path = DefaultPath()
	}
	_ = Setup(path, "debug")
}

// DefaultPath is the log file used when MAHAR_DEBUG is "1".
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "mahar-debug.log")
}

// Setup opens a file logger at path with the given level name ("debug",
// "info", "warn", "error"). An empty level means debug.
func Setup(path, level string) error {
	if level == "" {
		level = "debug"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("debug log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000")
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("debug log %s: %w", path, err)
	}
	SetLogger(l)
	return nil
}

// SetLogger installs l; nil disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger.Store(nil)
		return
	}
	logger.Store(l.Sugar())
}

// Sync flushes buffered entries.
func Sync() {
	if s := logger.Load(); s != nil {
		_ = s.Sync()
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return logger.Load() != nil
}

// Log writes a debug message.
func Log(format string, args ...any) {
	if s := logger.Load(); s != nil {
		s.Debugf(format, args...)
	}
}

// Warn writes a warning, for failures the UI recovers from.
func Warn(format string, args ...any) {
	if s := logger.Load(); s != nil {
		s.Warnf(format, args...)
	}
}

// LogTiming writes a timing message.
func LogTiming(name string, d time.Duration) {
	if s := logger.Load(); s != nil {
		s.Debugw(name+" took "+d.String(), "op", name, "elapsed", d)
	}
}

// LogIf writes a debug message only if cond is true.
func LogIf(cond bool, format string, args ...any) {
	if cond {
		Log(format, args...)
	}
}

// LogEnterExit logs entry and exit with timing:
//
//	defer debug.LogEnterExit("reload")()
func LogEnterExit(name string) func() {
	s := logger.Load()
	if s == nil {
		return func() {}
	}
	s.Debugf("-> %s", name)
	start := time.Now()
	return func() {
		s.Debugf("<- %s (%v)", name, time.Since(start))
	}
}

// Dump logs a value with its type.
func Dump(name string, v any) {
	Log("%s: %T = %+v", name, v, v)
}

// Section logs a section header.
func Section(name string) {
	Log("=== %s ===", name)
}
