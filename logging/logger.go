// Package logging provides structured logging for token issuance.
// It defines a Logger interface and implementations for JSON output
// and no-op logging.
package logging

import (
	"encoding/json"
	"io"
	"time"
)

// IssuanceLogEntry records one token issuance, successful or failed.
// The token itself is never logged - only its presence.
type IssuanceLogEntry struct {
	Timestamp      time.Time `json:"timestamp"`
	RoleName       string    `json:"role_name,omitempty"`
	ConnectionType string    `json:"connection_type,omitempty"`
	DirectoryID    string    `json:"directory_id,omitempty"`
	AttributeCount int       `json:"attribute_count,omitempty"`
	Issued         bool      `json:"issued"`
	ErrorCode      string    `json:"error_code,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// NotificationLogEntry records one downstream dispatch attempt. Dispatch
// failures are logged here and nowhere else - they never reach the caller.
type NotificationLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
	Delivered bool      `json:"delivered"`
	ErrorCode string    `json:"error_code,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Logger defines the interface for logging issuance and notification events.
type Logger interface {
	// LogIssuance logs a token issuance entry.
	LogIssuance(entry IssuanceLogEntry)

	// LogNotification logs a downstream notification dispatch entry.
	LogNotification(entry NotificationLogEntry)
}

// JSONLogger implements Logger with JSON Lines output.
// Each entry is written as a single line of JSON suitable for log aggregation.
type JSONLogger struct {
	writer io.Writer
}

// NewJSONLogger creates a new JSONLogger that writes to the given writer.
func NewJSONLogger(w io.Writer) *JSONLogger {
	return &JSONLogger{writer: w}
}

// LogIssuance writes the entry as a single line of JSON.
func (l *JSONLogger) LogIssuance(entry IssuanceLogEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	l.writer.Write(data)
	l.writer.Write([]byte("\n"))
}

// LogNotification writes the notification entry as a single line of JSON.
func (l *JSONLogger) LogNotification(entry NotificationLogEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	l.writer.Write(data)
	l.writer.Write([]byte("\n"))
}

// NopLogger implements Logger but discards all entries.
// Useful for testing or when logging is disabled.
type NopLogger struct{}

// NewNopLogger creates a new NopLogger that discards all entries.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

// LogIssuance discards the entry.
func (l *NopLogger) LogIssuance(entry IssuanceLogEntry) {}

// LogNotification discards the entry.
func (l *NopLogger) LogNotification(entry NotificationLogEntry) {}
