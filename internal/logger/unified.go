package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogType represents the type of log message
type LogType string

const (
	// UserLog entries are task notifications meant for the person running spin
	UserLog LogType = "user"
	// OpLog entries are operational details about spin itself
	OpLog LogType = "op"
)

const (
	fieldLogType    = "log_type"
	fieldAside      = "aside"
	fieldAsideStyle = "aside_style"
)

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// UnifiedLogger is the main logger interface
type UnifiedLogger struct {
	mu     sync.RWMutex
	logger *logrus.Logger
}

var (
	// unifiedLog is the global logger instance
	unifiedLog *UnifiedLogger
	once       sync.Once
)

// GetLogger returns the global logger instance, initializing it if necessary
func GetLogger() *UnifiedLogger {
	once.Do(func() {
		unifiedLog = NewUnifiedLogger(os.Stdout)
	})
	return unifiedLog
}

// NewUnifiedLogger creates a logger writing clean messages to output at notice verbosity
func NewUnifiedLogger(output io.Writer) *UnifiedLogger {
	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetLevel(VerbosityNotice.Level())
	logger.SetFormatter(&CLIFormatter{
		DisableTimestamp: true,
		DisableLevel:     true,
		DisableColors:    true,
	})
	return &UnifiedLogger{logger: logger}
}

// WithLogType creates a field for the log type
func WithLogType(logType LogType) Field {
	return Field{Key: fieldLogType, Value: string(logType)}
}

// WithAside creates the fields for a short styled prefix such as "[12:00:01]"
func WithAside(aside string, style Style) []Field {
	return []Field{
		{Key: fieldAside, Value: aside},
		{Key: fieldAsideStyle, Value: string(style)},
	}
}

// WithFields creates fields from a map
func WithFields(fields map[string]interface{}) []Field {
	result := make([]Field, 0, len(fields))
	for k, v := range fields {
		result = append(result, Field{Key: k, Value: v})
	}
	return result
}

// entry creates a logrus.Entry with the given fields
func (l *UnifiedLogger) entry(fields ...Field) *logrus.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	logFields := make(logrus.Fields)
	for _, field := range fields {
		logFields[field.Key] = field.Value
	}

	return l.logger.WithFields(logFields)
}

// Info logs an info message
func (l *UnifiedLogger) Info(msg string, fields ...Field) {
	l.entry(fields...).Info(msg)
}

// Error logs an error message
func (l *UnifiedLogger) Error(msg string, fields ...Field) {
	l.entry(fields...).Error(msg)
}

// Warn logs a warning message
func (l *UnifiedLogger) Warn(msg string, fields ...Field) {
	l.entry(fields...).Warn(msg)
}

// Debug logs a debug message
func (l *UnifiedLogger) Debug(msg string, fields ...Field) {
	l.entry(fields...).Debug(msg)
}

// Debugf logs a formatted debug message
func (l *UnifiedLogger) Debugf(format string, args ...interface{}) {
	l.entry(WithLogType(OpLog)).Debugf(format, args...)
}

// WithFieldsMap creates an operational entry with fields from a map
func (l *UnifiedLogger) WithFieldsMap(fields map[string]interface{}) *logrus.Entry {
	return l.entry(append(WithFields(fields), WithLogType(OpLog))...)
}

// Configure updates the logger configuration
func (l *UnifiedLogger) Configure(output io.Writer, level logrus.Level, formatter logrus.Formatter) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.SetOutput(output)
	l.logger.SetLevel(level)
	l.logger.SetFormatter(formatter)
}

// ReplaceHooks drops the current hooks and installs hook
func (l *UnifiedLogger) ReplaceHooks(hook logrus.Hook) {
	l.mu.Lock()
	defer l.mu.Unlock()

	hooks := make(logrus.LevelHooks)
	hooks.Add(hook)
	l.logger.ReplaceHooks(hooks)
}
