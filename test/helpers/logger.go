package helpers

import "sync"

// LogEntry is one message captured by RecordingLogger
type LogEntry struct {
	Level    string
	Message  string
	Metadata map[string]interface{}
}

// RecordingLogger implements common.Logger and keeps every entry
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewRecordingLogger creates an empty RecordingLogger
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

// Log implements common.Logger
func (l *RecordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: message, Metadata: metadata})
}

// Entries returns a copy of the captured entries
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// HasMessage reports whether any entry at level carries message
func (l *RecordingLogger) HasMessage(level, message string) bool {
	for _, e := range l.Entries() {
		if e.Level == level && e.Message == message {
			return true
		}
	}
	return false
}
