package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log entry
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
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

// ParseLevel converts a level name to a LogLevel, defaulting to info.
func ParseLevel(name string) LogLevel {
	switch name {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	RequestID string                 `json:"request_id,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Service   string                 `json:"service,omitempty"`
}

// Logger writes structured JSON log entries. Logging is diagnostic only and
// never alters control flow in the transport or the stores.
type Logger struct {
	level   LogLevel
	output  io.Writer
	service string
	mutex   sync.RWMutex
}

// Config holds logger configuration
type Config struct {
	Level   LogLevel
	Output  io.Writer
	Service string
}

// DefaultConfig returns a default logger configuration
func DefaultConfig() *Config {
	return &Config{
		Level:   LevelInfo,
		Output:  os.Stdout,
		Service: "erpclient",
	}
}

// NewLogger creates a new logger instance
func NewLogger(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Service == "" {
		config.Service = "erpclient"
	}

	return &Logger{
		level:   config.Level,
		output:  config.Output,
		service: config.Service,
	}
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	once.Do(func() {
		defaultLogger = NewLogger(DefaultConfig())
	})
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level LogLevel) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.level = level
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.level
}

func (l *Logger) shouldLog(level LogLevel) bool {
	return level >= l.GetLevel()
}

func (l *Logger) log(ctx context.Context, level LogLevel, message string, fields map[string]interface{}, err error) {
	if !l.shouldLog(level) {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level.String(),
		Message:   message,
		Service:   l.service,
		Fields:    redactFields(fields),
	}

	if requestID := GetRequestIDFromContext(ctx); requestID != "" {
		entry.RequestID = requestID
	}
	if err != nil {
		entry.Error = redact(err.Error())
	}

	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		data = []byte(fmt.Sprintf(`{"timestamp":%q,"level":%q,"message":"JSON marshal error: %v","service":%q}`,
			entry.Timestamp.Format(time.RFC3339), entry.Level, marshalErr, l.service))
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.output.Write(data)
	l.output.Write([]byte("\n"))
}

// WithFields returns a new logger with additional fields
func (l *Logger) WithFields(fields map[string]interface{}) *ContextLogger {
	return &ContextLogger{
		logger: l,
		fields: fields,
	}
}

// WithField returns a new logger with an additional field
func (l *Logger) WithField(key string, value interface{}) *ContextLogger {
	return l.WithFields(map[string]interface{}{key: value})
}

// Debug logs a debug message
func (l *Logger) Debug(ctx context.Context, message string) {
	l.log(ctx, LevelDebug, message, nil, nil)
}

// Info logs an info message
func (l *Logger) Info(ctx context.Context, message string) {
	l.log(ctx, LevelInfo, message, nil, nil)
}

// Warn logs a warning message
func (l *Logger) Warn(ctx context.Context, message string) {
	l.log(ctx, LevelWarn, message, nil, nil)
}

// Error logs an error message
func (l *Logger) Error(ctx context.Context, message string, err error) {
	l.log(ctx, LevelError, message, nil, err)
}

// ContextLogger wraps the main logger with additional context fields
type ContextLogger struct {
	logger *Logger
	fields map[string]interface{}
}

// WithField adds an additional field to the context logger
func (cl *ContextLogger) WithField(key string, value interface{}) *ContextLogger {
	newFields := make(map[string]interface{}, len(cl.fields)+1)
	for k, v := range cl.fields {
		newFields[k] = v
	}
	newFields[key] = value
	return &ContextLogger{logger: cl.logger, fields: newFields}
}

// WithFields adds additional fields to the context logger
func (cl *ContextLogger) WithFields(fields map[string]interface{}) *ContextLogger {
	newFields := make(map[string]interface{}, len(cl.fields)+len(fields))
	for k, v := range cl.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &ContextLogger{logger: cl.logger, fields: newFields}
}

// Debug logs a debug message with context fields
func (cl *ContextLogger) Debug(ctx context.Context, message string) {
	cl.logger.log(ctx, LevelDebug, message, cl.fields, nil)
}

// Info logs an info message with context fields
func (cl *ContextLogger) Info(ctx context.Context, message string) {
	cl.logger.log(ctx, LevelInfo, message, cl.fields, nil)
}

// Warn logs a warning message with context fields
func (cl *ContextLogger) Warn(ctx context.Context, message string) {
	cl.logger.log(ctx, LevelWarn, message, cl.fields, nil)
}

// Error logs an error message with context fields
func (cl *ContextLogger) Error(ctx context.Context, message string, err error) {
	cl.logger.log(ctx, LevelError, message, cl.fields, err)
}
