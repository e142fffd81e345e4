// Package logger provides standardized logging for the P2C translator.
// Every function is a no-op until Init is called.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Global logger instance
var defaultLogger *slog.Logger

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Config holds logger configuration
type Config struct {
	Level     LogLevel
	Format    string // "text" or "json"
	Output    io.Writer
	AddSource bool
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: "text",
		Output: os.Stderr,
	}
}

// Init installs the global logger with the given configuration.
func Init(cfg Config) {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     toSlogLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}
	defaultLogger = slog.New(handler)
}

// Disable turns logging back into a no-op.
func Disable() {
	defaultLogger = nil
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Debug(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Info(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Warn(msg, args...)
	}
}

// Translator-specific logging helpers

// LogLexing logs the size of the token stream.
func LogLexing(file string, tokenCount int) {
	Debug("lexing complete", "file", file, "tokens", tokenCount)
}

// LogParsing logs the number of top-level statements parsed.
func LogParsing(file string, stmtCount int) {
	Debug("parsing complete", "file", file, "statements", stmtCount)
}

// LogLowering logs the names generated by one lowering run.
func LogLowering(file string, instrs, temps, labels, symbols int) {
	Debug("lowering complete",
		"file", file,
		"instructions", instrs,
		"temps", temps,
		"labels", labels,
		"symbols", symbols)
}

// LogRun logs the outcome of running a translated program.
func LogRun(file string, steps, vars int) {
	Info("run complete", "file", file, "steps", steps, "variables", vars)
}

// LogWarning logs a non-fatal diagnostic about the source.
func LogWarning(file string, line int, msg string) {
	Warn("source warning", "file", file, "line", line, "message", msg)
}
