// Package logging wires up the zerolog logger subdocctl and the engine's
// longer-running callers share, plus a small ring buffer so a CLI run can
// replay its own recent log lines without re-parsing stdout.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// New builds a logger that writes structured JSON to w, tagged with
// component and, when requestID is non-empty, a correlation id every
// subsequent entry carries.
func New(w io.Writer, component, requestID string) zerolog.Logger {
	ctx := zerolog.New(w).With().Timestamp().Str("component", component)
	if requestID != "" {
		ctx = ctx.Str("request_id", requestID)
	}
	return ctx.Logger()
}

// NewConsole builds a human-readable logger for interactive CLI use.
func NewConsole(component, requestID string) zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return New(cw, component, requestID)
}

// Buffer is a small, fixed-capacity ring buffer of raw log lines, used to
// let a CLI command attach its own recent diagnostics to an error report
// without re-reading whatever file descriptor the logger was writing to.
type Buffer struct {
	mu       sync.Mutex
	lines    [][]byte
	capacity int
	next     int
	full     bool
}

// NewBuffer returns a Buffer holding at most capacity lines.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 256
	}
	return &Buffer{lines: make([][]byte, capacity), capacity: capacity}
}

// Write implements io.Writer, storing a copy of p as the next ring entry.
func (b *Buffer) Write(p []byte) (int, error) {
	line := append([]byte(nil), p...)
	b.mu.Lock()
	b.lines[b.next] = line
	b.next = (b.next + 1) % b.capacity
	if b.next == 0 {
		b.full = true
	}
	b.mu.Unlock()
	return len(p), nil
}

// Lines returns the buffered lines in chronological order.
func (b *Buffer) Lines() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.full {
		out := make([][]byte, b.next)
		copy(out, b.lines[:b.next])
		return out
	}
	out := make([][]byte, b.capacity)
	for i := 0; i < b.capacity; i++ {
		out[i] = b.lines[(b.next+i)%b.capacity]
	}
	return out
}

// Tee returns a writer that writes to both w and the buffer.
func (b *Buffer) Tee(w io.Writer) io.Writer {
	return io.MultiWriter(w, b)
}
