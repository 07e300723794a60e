package valyu

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// DebugLogger provides debug logging for Valyu operations.
// When enabled, it logs all API communication including
// requests, responses, and full error details.
type DebugLogger struct {
	mu      sync.Mutex
	enabled bool
	writer  io.Writer
	secret  string
}

// NewDebugLogger creates a new debug logger.
// If logPath is empty, logs to stderr.
func NewDebugLogger(enabled bool, logPath string) (*DebugLogger, error) {
	var writer io.Writer = os.Stderr

	if enabled && logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open debug log: %w", err)
		}
		writer = f
	}

	return &DebugLogger{
		enabled: enabled,
		writer:  writer,
	}, nil
}

// newDebugLoggerTo creates an enabled logger writing to w.
func newDebugLoggerTo(w io.Writer) *DebugLogger {
	return &DebugLogger{enabled: true, writer: w}
}

// Close closes the debug logger if it's writing to a file.
func (l *DebugLogger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if closer, ok := l.writer.(io.Closer); ok && l.writer != os.Stderr {
		return closer.Close()
	}
	return nil
}

// redact registers the API key so it never reaches the log.
func (l *DebugLogger) redact(secret string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.secret = secret
	l.mu.Unlock()
}

// Log writes a debug message if logging is enabled.
func (l *DebugLogger) Log(format string, args ...any) {
	if l == nil || !l.enabled {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02T15:04:05.000Z07:00")
	msg := fmt.Sprintf(format, args...)
	if l.secret != "" {
		msg = strings.ReplaceAll(msg, l.secret, "[REDACTED]")
	}
	_, _ = fmt.Fprintf(l.writer, "[%s] [VALYU DEBUG] %s\n", timestamp, msg)
}

// LogRequest logs an outgoing HTTP request.
func (l *DebugLogger) LogRequest(id, method, url string, body []byte) {
	if l == nil || !l.enabled {
		return
	}
	l.Log("%s REQUEST %s %s", id, method, url)
	if len(body) > 0 {
		l.Log("%s REQUEST BODY: %s", id, truncateForLog(string(body), 2000))
	}
}

// LogResponse logs an HTTP response.
func (l *DebugLogger) LogResponse(id string, statusCode int, status string, elapsed time.Duration, body []byte) {
	if l == nil || !l.enabled {
		return
	}
	l.Log("%s RESPONSE %d %s (%s)", id, statusCode, status, elapsed.Round(time.Millisecond))
	if len(body) > 0 {
		l.Log("%s RESPONSE BODY: %s", id, truncateForLog(string(body), 4000))
	}
}

// LogError logs an error with full details.
func (l *DebugLogger) LogError(id, operation string, err error) {
	if l == nil || !l.enabled {
		return
	}
	l.Log("%s ERROR [%s]: %v", id, operation, err)
}

// truncateForLog truncates a string for logging purposes.
func truncateForLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + fmt.Sprintf("... [truncated, %d bytes total]", len(s))
}
