package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewLogger(&Config{Level: level, Output: buf, Service: "erpclient-test"})
	return logger, buf
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) LogEntry {
	t.Helper()
	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLoggerLevels(t *testing.T) {
	logger, buf := newTestLogger(LevelWarn)
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	assert.Zero(t, buf.Len(), "entries below the configured level must be dropped")

	logger.Warn(ctx, "warn message")
	entry := decodeEntry(t, buf)
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "warn message", entry.Message)
	assert.Equal(t, "erpclient-test", entry.Service)
}

func TestLoggerWithFields(t *testing.T) {
	logger, buf := newTestLogger(LevelDebug)

	logger.WithField("method", "GET").
		WithFields(map[string]interface{}{"url": "/company", "status_code": 200}).
		Debug(context.Background(), "request completed")

	entry := decodeEntry(t, buf)
	assert.Equal(t, "GET", entry.Fields["method"])
	assert.Equal(t, "/company", entry.Fields["url"])
	assert.Equal(t, float64(200), entry.Fields["status_code"])
}

func TestLoggerRequestIDFromContext(t *testing.T) {
	logger, buf := newTestLogger(LevelDebug)
	ctx := WithRequestID(context.Background(), "req-123")

	logger.Info(ctx, "with request id")

	entry := decodeEntry(t, buf)
	assert.Equal(t, "req-123", entry.RequestID)
}

func TestLoggerRedactsCredentials(t *testing.T) {
	logger, buf := newTestLogger(LevelDebug)

	logger.WithFields(map[string]interface{}{
		"authorization": "Bearer abc123",
		"note":          "sent Bearer abc123 upstream",
	}).Error(context.Background(), "request failed", errors.New("401 for Bearer abc123"))

	out := buf.String()
	assert.NotContains(t, out, "abc123")
	assert.Contains(t, out, "[REDACTED]")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("unknown"))
}
