// Package log provides a leveled structured logger built on log/slog.
//
// A single global logger writes JSON (or text, see SetFormat) to os.Stderr.
// The level lives in a slog.LevelVar so it can change at runtime without
// rebuilding the handler. The CLI sets level and format from flags or
// configuration before any work starts.
//
// SetOutput redirects output and returns a function that restores it; it is
// meant for tests.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// FormatEnvVar selects the output format when SetFormat has not been called.
const FormatEnvVar = "PERMNORM_LOG_FORMAT"

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

const (
	levelDebugStr = "DEBUG"
	levelInfoStr  = "INFO"
	levelWarnStr  = "WARN"
	levelErrorStr = "ERROR"
)

var (
	logger        *slog.Logger
	globalLeveler           = &slog.LevelVar{}
	outputWriter  io.Writer = os.Stderr
	format        string

	// ErrInvalidLogLevel indicates an invalid log level string was provided.
	ErrInvalidLogLevel = fmt.Errorf("invalid log level")
	// ErrInvalidLogFormat indicates an unknown output format was requested.
	ErrInvalidLogFormat = fmt.Errorf("invalid log format")

	// includeTimestampsForTest forces timestamps into JSON output.
	includeTimestampsForTest bool
)

func init() {
	globalLeveler.Set(slog.LevelInfo)
	configureLogger()
}

// configureLogger rebuilds the handler from outputWriter, format and the
// shared LevelVar.
func configureLogger() {
	f := format
	if f == "" {
		f = strings.ToLower(os.Getenv(FormatEnvVar))
	}

	opts := &slog.HandlerOptions{Level: globalLeveler}
	var handler slog.Handler
	if f == FormatText {
		handler = slog.NewTextHandler(outputWriter, opts)
	} else {
		// JSON lines stay diff-friendly without a timestamp.
		opts.ReplaceAttr = func(_ []string, a slog.Attr) slog.Attr {
			if !includeTimestampsForTest && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}
		handler = slog.NewJSONHandler(outputWriter, opts)
	}
	logger = slog.New(handler)
}

// SetOutput changes the output destination for the logger.
// It returns a function that restores the previous writer.
func SetOutput(w io.Writer) (restore func()) {
	originalWriter := outputWriter
	outputWriter = w
	configureLogger()
	return func() {
		outputWriter = originalWriter
		configureLogger()
	}
}

// SetFormat selects "json" or "text" output. An empty string falls back to
// the PERMNORM_LOG_FORMAT environment variable.
func SetFormat(f string) error {
	f = strings.ToLower(strings.TrimSpace(f))
	switch f {
	case "", FormatJSON, FormatText:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidLogFormat, f)
	}
	format = f
	configureLogger()
	return nil
}

// CurrentFormat returns the format set by SetFormat, or "" when the
// environment decides.
func CurrentFormat() string {
	return format
}

// Debug logs a debug message with optional key-value pairs
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// Warnf logs a formatted warning.
func Warnf(format string, args ...any) {
	logger.Warn(fmt.Sprintf(format, args...))
}

// Logger returns the underlying slog.Logger
func Logger() *slog.Logger {
	return logger
}

// SetLevel changes the log level at runtime. It accepts a Level or a
// slog.Level and panics on anything else.
func SetLevel(level interface{}) {
	var targetSlogLevel slog.Level
	switch v := level.(type) {
	case slog.Level:
		targetSlogLevel = v
	case Level:
		targetSlogLevel = slog.Level(v)
	default:
		panic(fmt.Sprintf("SetLevel: unsupported level type %T", level))
	}
	globalLeveler.Set(targetSlogLevel)
}

// CurrentLevel returns the current slog.Level from the LevelVar
func CurrentLevel() slog.Level {
	return globalLeveler.Level()
}

// Level mirrors slog.Level so callers do not need to import log/slog.
type Level int8

// Log level definitions.
const (
	// LevelDebug defines the debug log level.
	LevelDebug Level = Level(slog.LevelDebug)
	// LevelInfo defines the info log level.
	LevelInfo Level = Level(slog.LevelInfo)
	// LevelWarn defines the warn log level.
	LevelWarn Level = Level(slog.LevelWarn)
	// LevelError defines the error log level.
	LevelError Level = Level(slog.LevelError)
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string and returns the corresponding Level.
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case levelDebugStr:
		return LevelDebug, nil
	case levelInfoStr:
		return LevelInfo, nil
	case levelWarnStr, "WARNING":
		return LevelWarn, nil
	case levelErrorStr:
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLogLevel, levelStr)
	}
}

// SetTestModeWithTimestamps controls whether timestamps are included in JSON
// logs. Only test helpers should call it.
func SetTestModeWithTimestamps(enabled bool) {
	includeTimestampsForTest = enabled
	configureLogger()
}
