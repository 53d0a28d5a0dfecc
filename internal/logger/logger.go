// Package logger builds the file logger. The terminal belongs to the
// reader, so only the headless server logs to stderr.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appName = "novel-t"

// Config selects the level (none, debug or normal) and destination
type Config struct {
	Level string
	Path  string
	// Append keeps earlier sessions in the file instead of truncating it
	Append bool
	// Console writes to stderr and ignores Path
	Console bool
}

// New returns a configured logger and a function that flushes and closes
// its file. Level "none" yields a no-op logger.
func New(conf Config) (*zap.Logger, func() error, error) {
	var level zapcore.Level
	switch conf.Level {
	case "debug":
		level = zap.DebugLevel
	case "normal":
		level = zap.InfoLevel
	case "", "none":
		return zap.NewNop(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown log level %q", conf.Level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	if conf.Console {
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(level))
		log := zap.New(core).Named(appName)
		return log, func() error { _ = log.Sync(); return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(conf.Path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	flags := os.O_CREATE | os.O_WRONLY
	if conf.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(conf.Path, flags, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.Path, err)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(f), zap.NewAtomicLevelAt(level))
	log := zap.New(core, zap.AddCaller()).Named(appName)

	closer := func() error {
		_ = log.Sync()
		return f.Close()
	}
	return log, closer, nil
}
