// Package logging builds the structured logger. The terminal belongs to the
// viewer, so log output only ever goes to a file; without one every log call
// is discarded.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerContextKey struct{}

const (
	VersionKey   = "version"
	GoVersionKey = "go_version"
	TimeStampKey = "timestamp"
	MessageKey   = "message"
)

// Options configures New and Open.
type Options struct {
	// Level is debug, info or error. Empty means info.
	Level   string
	Version string
}

// ParseLevel maps a level name to a zap level. Debug enables logr V(1).
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (want debug, info or error)", name)
}

// New returns a JSON logger writing to w.
func New(w io.Writer, opts Options) (logr.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return logr.Discard(), err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	goVersion := ""
	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(level),
	).With([]zapcore.Field{
		zap.String(VersionKey, opts.Version),
		zap.String(GoVersionKey, goVersion),
	})

	zl := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	return zapr.NewLogger(zl), nil
}

// Open returns a logger appending to path and a function that flushes and
// closes the file. An empty path yields a discarding logger.
func Open(path string, opts Options) (logr.Logger, func() error, error) {
	if strings.TrimSpace(path) == "" {
		if _, err := ParseLevel(opts.Level); err != nil {
			return logr.Discard(), noop, err
		}
		return logr.Discard(), noop, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return logr.Discard(), noop, fmt.Errorf("open log file: %w", err)
	}
	log, err := New(f, opts)
	if err != nil {
		_ = f.Close()
		return logr.Discard(), noop, err
	}
	closeFn := func() error {
		if err := f.Sync(); err != nil && !isIgnorableSyncError(err) {
			_ = f.Close()
			return err
		}
		return f.Close()
	}
	return log, closeFn, nil
}

func noop() error { return nil }

// WithLogger returns a context carrying log.
func WithLogger(ctx context.Context, log logr.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger stored in ctx, or a discarding logger.
func FromContext(ctx context.Context) logr.Logger {
	if ctx == nil {
		return logr.Discard()
	}
	if log, ok := ctx.Value(loggerContextKey{}).(logr.Logger); ok {
		return log
	}
	return logr.Discard()
}

func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EBADF)
}
