// Package logs provides the process-wide zap logger.
package logs

import (
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/samdwyer/generals/internal/config"
)

var (
	logger = zap.NewNop()
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Init builds the global logger: a colored console core on stderr and, when
// cfg.File is set, a JSON core writing to a rotated file. With neither
// enabled the logger discards everything.
func Init(appName string, cfg config.LogConfig) error {
	if err := SetLevel(cfg.Level); err != nil {
		return err
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core
	if cfg.Console {
		consoleCfg := encoderCfg
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(os.Stderr),
			level,
		))
	}
	if cfg.File != "" {
		// JSON file output without ANSI colors, rotated by lumberjack.
		fileCfg := encoderCfg
		fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileCfg),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    max(1, cfg.MaxSize),
				MaxBackups: max(0, cfg.MaxBackups),
				MaxAge:     max(0, cfg.MaxAge),
				Compress:   cfg.Compress,
			}),
			level,
		))
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Dev {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}

	_ = logger.Sync()
	logger = zap.New(zapcore.NewTee(cores...), opts...).Named(appName)
	return nil
}

// L returns the global logger.
func L() *zap.Logger {
	return logger
}

// SetLevel changes the level of the running logger. An empty string means info.
func SetLevel(s string) error {
	lvl := zapcore.InfoLevel
	if s != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
			return fmt.Errorf("invalid log level %q: %w", s, err)
		}
	}
	level.SetLevel(lvl)
	return nil
}

// Level returns the current level.
func Level() zapcore.Level {
	return level.Level()
}

// Sync flushes buffered log entries.
func Sync() error {
	return logger.Sync()
}

// Debug logs at debug level.
func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

// Info logs at info level.
func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

// Warn logs at warn level.
func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

// Error logs at error level.
func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}
