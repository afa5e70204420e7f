package client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogLevelToString(t *testing.T) {
	require.Equal(t, "debug", LogLevelToString(LogLevelDebug))
	require.Equal(t, "warn", LogLevelToString(LogLevelWarn))
	require.Equal(t, "", LogLevelToString(LogLevel(100)))
}

type testHandler struct {
	entries []LogEntry
}

func (h *testHandler) Handle(e LogEntry) {
	h.entries = append(h.entries, e)
}

func TestLogger(t *testing.T) {
	h := testHandler{}
	l := NewLogger(LogLevelWarn, h.Handle)
	l.Log(NewLogEntry(LogLevelDebug, "test"))
	l.Log(NewLogEntry(LogLevelInfo, "test"))
	require.Len(t, h.entries, 0)
	l.Log(NewLogEntry(LogLevelError, "test"))
	require.Len(t, h.entries, 1)
	require.False(t, l.Enabled(LogLevelDebug))
	require.True(t, l.Enabled(LogLevelWarn))
}

func TestLoggerNone(t *testing.T) {
	h := testHandler{}
	l := NewLogger(LogLevelNone, h.Handle)
	l.Log(NewLogEntry(LogLevelError, "test"))
	require.Len(t, h.entries, 0)
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	require.False(t, l.Enabled(LogLevelError))
	require.NotPanics(t, func() {
		l.Log(NewLogEntry(LogLevelError, "test"))
	})
}

func TestNewLogEntry(t *testing.T) {
	entry := NewLogEntry(LogLevelDebug, "test")
	require.Equal(t, LogLevelDebug, entry.Level)
	require.Equal(t, "test", entry.Message)
	require.Nil(t, entry.Fields)

	entry = NewLogEntry(LogLevelError, "test", map[string]any{"one": true})
	require.Equal(t, LogLevelError, entry.Level)
	require.NotNil(t, entry.Fields)
	require.Equal(t, true, entry.Fields["one"].(bool))
}
