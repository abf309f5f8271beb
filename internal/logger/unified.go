package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogType represents the type of log message
type LogType string

const (
	UserLog LogType = "user"
	OpLog   LogType = "op"
)

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// UnifiedLogger owns the logrus logger behind the User and Op loggers
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
		initDefaultLogger()
	})
	return unifiedLog
}

// initDefaultLogger creates a default logger configuration
func initDefaultLogger() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&CLIFormatter{
		DisableTimestamp: true,
		DisableLevel:     true,
		DisableColors:    false,
	})

	unifiedLog = &UnifiedLogger{
		logger: logger,
	}
}

// WithLogType creates a field for the log type
func WithLogType(logType LogType) Field {
	return Field{Key: "log_type", Value: string(logType)}
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

// WithFieldsMap creates an entry with fields from a map
func (l *UnifiedLogger) WithFieldsMap(fields map[string]interface{}) *logrus.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logger.WithFields(fields)
}

// ForTask returns an operational entry tagged with the task name
func (l *UnifiedLogger) ForTask(task string) *logrus.Entry {
	return l.entry(WithLogType(OpLog), Field{Key: "task", Value: task})
}

// GetInternalLogger returns the underlying logrus logger (use with caution)
func (l *UnifiedLogger) GetInternalLogger() *logrus.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logger
}

// Starting logs a workflow start message with status prefix
func (l *UnifiedLogger) Starting(msg string) {
	l.Info("[STARTING] "+msg, WithLogType(UserLog))
}

// Success logs a completion message with status prefix
func (l *UnifiedLogger) Success(msg string) {
	l.Info("[COMPLETED] "+msg, WithLogType(UserLog))
}
