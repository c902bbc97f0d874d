package log

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger writes protocol events as a CBOR stream.
// It is safe for concurrent use from multiple goroutines.
type FileLogger struct {
	mu      sync.Mutex
	w       io.WriteCloser
	encoder *cbor.Encoder
	closed  bool

	written int
	lastErr error
}

// NewFileLogger creates a FileLogger that appends to the file at path.
// Missing parent directories are created; the file is created with
// permissions 0644.
func NewFileLogger(path string) (*FileLogger, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return NewStreamLogger(f), nil
}

// NewStreamLogger creates a FileLogger that writes to w. Close closes w.
func NewStreamLogger(w io.WriteCloser) *FileLogger {
	return &FileLogger{w: w, encoder: NewEncoder(w)}
}

// Log writes an event. Encoding errors do not reach the caller - logging
// must not disrupt resolution - but are kept for Err.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if err := l.encoder.Encode(event); err != nil {
		l.lastErr = err
		return
	}
	l.written++
}

// Written returns the number of events successfully written.
func (l *FileLogger) Written() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written
}

// Err returns the last encoding error, if any.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Close closes the underlying writer. It is safe to call Close multiple
// times; subsequent Log calls are silently ignored.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return l.w.Close()
}

// Compile-time interface satisfaction check.
var _ Logger = (*FileLogger)(nil)
