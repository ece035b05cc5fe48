package logger

import (
	"fmt"

	"github.com/hyperterse/seeder/core/infrastructure/logging"
)

// Re-exported log level constants
const (
	LogLevelError = logging.LogLevelError
	LogLevelWarn  = logging.LogLevelWarn
	LogLevelInfo  = logging.LogLevelInfo
	LogLevelDebug = logging.LogLevelDebug
)

// SetLogLevel sets the global log level
func SetLogLevel(level int) {
	logging.SetLogLevel(level)
}

// GetLogLevel returns the current global log level
func GetLogLevel() int {
	return logging.GetLogLevel()
}

// ParseLogLevel converts a level name or number into a level constant
func ParseLogLevel(value string) (int, error) {
	return logging.ParseLogLevel(value)
}

// SetTagFilter sets the tag filter
func SetTagFilter(filterStr string) {
	logging.SetTagFilter(filterStr)
}

// SetLogFile mirrors output into a file
func SetLogFile(path string) error {
	return logging.SetLogFile(path)
}

// CloseLogFile closes the log file
func CloseLogFile() error {
	return logging.CloseLogFile()
}

// Logger is a tagged logger. Its Errorf builds an error instead of printing
// one: errors travel up to the CLI boundary and are logged there once.
type Logger struct {
	tag  string
	impl logging.Logger
}

// New creates a new logger instance with a tag
func New(tag string) *Logger {
	return &Logger{
		tag:  tag,
		impl: logging.New(tag),
	}
}

// Tag returns the logger's tag.
func (l *Logger) Tag() string {
	return l.tag
}

// Error logs at ERROR level
func (l *Logger) Error(message string) {
	l.impl.Error(message)
}

// Errorf returns a formatted error tagged with this logger's tag.
func (l *Logger) Errorf(format string, args ...any) error {
	return WithTag(l.tag, fmt.Errorf(format, args...))
}

// Warn logs at WARN level
func (l *Logger) Warn(message string) {
	l.impl.Warn(message)
}

// Warnf logs at WARN level with formatting
func (l *Logger) Warnf(format string, args ...any) {
	l.impl.Warnf(format, args...)
}

// Info logs at INFO level
func (l *Logger) Info(message string) {
	l.impl.Info(message)
}

// Infof logs at INFO level with formatting
func (l *Logger) Infof(format string, args ...any) {
	l.impl.Infof(format, args...)
}

// Success logs a line that shows regardless of log level
func (l *Logger) Success(message string) {
	l.impl.Success(message)
}

// Successf logs a formatted line that shows regardless of log level
func (l *Logger) Successf(format string, args ...any) {
	l.impl.Successf(format, args...)
}

// Debug logs at DEBUG level
func (l *Logger) Debug(message string) {
	l.impl.Debug(message)
}

// Debugf logs at DEBUG level with formatting
func (l *Logger) Debugf(format string, args ...any) {
	l.impl.Debugf(format, args...)
}

// Multiline logs each element on its own line
func (l *Logger) Multiline(lines []any) {
	l.impl.Multiline(lines)
}

// PrintError logs err under a title at ERROR level
func (l *Logger) PrintError(title string, err error) {
	if err == nil {
		return
	}
	l.impl.Errorf("%s: %v", title, err)
}
