// Package logger provides structured logging for code-inventory using zap.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dbsmedya/codeinventory/internal/config"
)

// Logger wraps zap.SugaredLogger with context methods.
type Logger struct {
	*zap.SugaredLogger
	base *zap.Logger
}

// New creates a new Logger from configuration.
func New(cfg *config.LoggingConfig) (*Logger, error) {
	ws, tty := buildWriters(cfg.Output)
	return newLogger(cfg, ws, tty), nil
}

// NewWithWriter creates a Logger that writes to w regardless of cfg.Output.
func NewWithWriter(cfg *config.LoggingConfig, w io.Writer) *Logger {
	return newLogger(cfg, zapcore.AddSync(w), isTerminal(w))
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return FromZap(zap.NewNop())
}

// FromZap wraps an existing zap.Logger.
func FromZap(base *zap.Logger) *Logger {
	return &Logger{
		SugaredLogger: base.Sugar(),
		base:          base,
	}
}

func newLogger(cfg *config.LoggingConfig, ws zapcore.WriteSyncer, tty bool) *Logger {
	level := parseLevel(cfg.Level)
	encoder := buildEncoder(cfg.Format, tty)

	core := zapcore.NewCore(encoder, ws, level)
	return FromZap(zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
}

// parseLevel converts string level to zapcore.Level.
func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// buildEncoder creates the appropriate encoder based on format. Level colours
// are only used when the sink is a terminal.
func buildEncoder(format string, tty bool) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if format == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}

	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if tty {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// buildWriters creates the output writers based on configuration and reports
// whether every sink is a terminal.
func buildWriters(output string) (zapcore.WriteSyncer, bool) {
	switch output {
	case "stderr", "":
		return zapcore.AddSync(os.Stderr), isTerminal(os.Stderr)
	case "stdout":
		return zapcore.AddSync(os.Stdout), isTerminal(os.Stdout)
	default:
		// File output
		file, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			// Fall back to stderr
			return zapcore.AddSync(os.Stderr), isTerminal(os.Stderr)
		}
		// Write to both file and stderr
		return zapcore.NewMultiWriteSyncer(
			zapcore.AddSync(file),
			zapcore.AddSync(os.Stderr),
		), false
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// Named returns a Logger scoped to a component name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.Named(name),
		base:          l.base,
	}
}

// WithRepo returns a Logger with repository root context.
func (l *Logger) WithRepo(repoRoot string) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.With("repo", repoRoot),
		base:          l.base,
	}
}

// WithFolder returns a Logger with folder context.
func (l *Logger) WithFolder(folder string) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.With("folder", folder),
		base:          l.base,
	}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}
