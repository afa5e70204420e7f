package client

// LogLevel describes the chosen log level.
type LogLevel int

const (
	// LogLevelNone means no logging.
	LogLevelNone LogLevel = iota
	// LogLevelTrace turns on trace logs - should only be used during development.
	LogLevelTrace
	// LogLevelDebug turns on debug logs - its generally too much for production
	// but can be useful when troubleshooting a single exchange.
	LogLevelDebug
	// LogLevelInfo logs the phases of a run.
	LogLevelInfo
	// LogLevelWarn logs events that may need attention.
	LogLevelWarn
	// LogLevelError level logs only errors.
	LogLevelError
)

// levelToString matches LogLevel to its string representation.
var levelToString = map[LogLevel]string{
	LogLevelNone:  "none",
	LogLevelTrace: "trace",
	LogLevelDebug: "debug",
	LogLevelInfo:  "info",
	LogLevelWarn:  "warn",
	LogLevelError: "error",
}

// LogLevelToString transforms LogLevel to its string representation.
func LogLevelToString(l LogLevel) string {
	if t, ok := levelToString[l]; ok {
		return t
	}
	return ""
}

// LogEntry represents log entry.
type LogEntry struct {
	Level   LogLevel
	Message string
	Fields  map[string]any
}

// NewLogEntry helps to create Entry.
func NewLogEntry(level LogLevel, message string, fields ...map[string]any) LogEntry {
	var f map[string]any
	if len(fields) > 0 {
		f = fields[0]
	}
	return LogEntry{
		Level:   level,
		Message: message,
		Fields:  f,
	}
}

// LogHandler handles log entries - i.e. writes into correct destination if necessary.
type LogHandler func(LogEntry)

// Logger filters entries below its minimum level and passes the rest to
// its handler. A nil *Logger drops everything.
type Logger struct {
	level   LogLevel
	handler LogHandler
}

// NewLogger returns a Logger forwarding entries at level or above to handler.
func NewLogger(level LogLevel, handler LogHandler) *Logger {
	return &Logger{level: level, handler: handler}
}

// Enabled says whether entries at level would be handled.
func (l *Logger) Enabled(level LogLevel) bool {
	if l == nil || l.handler == nil || l.level == LogLevelNone {
		return false
	}
	return level >= l.level
}

// Log passes entry to the handler if its level is enabled.
func (l *Logger) Log(entry LogEntry) {
	if l.Enabled(entry.Level) {
		l.handler(entry)
	}
}
