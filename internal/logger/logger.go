// Package logger provides the process-wide structured logger.
//
// It wraps zap with a small leveled API so call sites stay terse:
//
//	logger.Init("debug", false)
//	logger.Infof("pricing %d contracts", n)
//	logger.L().Info("priced", zap.Float64("price", p))
//
// All output goes to stderr; stdout is reserved for results.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base  = zap.NewNop()
	sugar = base.Sugar()
)

func init() {
	if err := Init("info", false); err != nil {
		disable(os.Stderr, err)
	}
}

// disable reports err on w and swaps in a no-op logger.
func disable(w io.Writer, err error) {
	fmt.Fprintf(w, "logger: %v; logging disabled\n", err)
	base = zap.NewNop()
	sugar = base.Sugar()
}

// Init rebuilds the global logger. development switches to the console
// encoder with caller info; otherwise JSON lines are written.
// Typically called once during startup, after flags are parsed.
func Init(lvl string, development bool) error {
	if err := SetLevel(lvl); err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	lg, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	base = lg
	sugar = lg.Sugar()
	return nil
}

// SetLevel changes verbosity without rebuilding the logger.
// Accepts debug, info, warn, error.
func SetLevel(lvl string) error {
	if lvl == "" {
		lvl = "info"
	}
	l, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", lvl, err)
	}
	level.SetLevel(l)
	return nil
}

func L() *zap.Logger        { return base }
func S() *zap.SugaredLogger { return sugar }

// Sync flushes buffered entries. Callers usually discard the error, which
// is spurious when stderr is a terminal.
func Sync() error { return base.Sync() }

func Errorf(format string, args ...any) { sugar.Errorf(format, args...) }
func Warnf(format string, args ...any)  { sugar.Warnf(format, args...) }
func Infof(format string, args ...any)  { sugar.Infof(format, args...) }
func Debugf(format string, args ...any) { sugar.Debugf(format, args...) }
