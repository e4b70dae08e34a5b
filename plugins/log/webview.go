package log

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kbukum/gollama/plugin"
)

// EventName is the frontend event carrying log records.
const EventName = "log://log"

// pendingLimit bounds the records kept while no webview is attached.
const pendingLimit = 256

// Level numbers as seen by the frontend.
const (
	LevelTrace = 1
	LevelDebug = 2
	LevelInfo  = 3
	LevelWarn  = 4
	LevelError = 5
)

// Record is the payload of a log://log event.
type Record struct {
	Level   int    `json:"level"`
	Message string `json:"message"`
}

// WebviewWriter is a zerolog.LevelWriter that emits records to the
// attached host. Records written before Attach are buffered.
type WebviewWriter struct {
	mu      sync.Mutex
	host    plugin.Host
	pending []Record
}

var _ zerolog.LevelWriter = (*WebviewWriter)(nil)

// NewWebviewWriter returns a detached writer.
func NewWebviewWriter() *WebviewWriter {
	return &WebviewWriter{}
}

// Write handles events without a level as info.
func (w *WebviewWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.InfoLevel, p)
}

// WriteLevel converts one JSON event into a Record.
func (w *WebviewWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	rec := Record{Level: levelNumber(level), Message: eventMessage(p)}

	w.mu.Lock()
	host := w.host
	if host == nil {
		if len(w.pending) == pendingLimit {
			w.pending = w.pending[1:]
		}
		w.pending = append(w.pending, rec)
	}
	w.mu.Unlock()

	if host != nil {
		host.Emit(EventName, rec)
	}
	return len(p), nil
}

// Attach connects the writer to host and flushes buffered records.
func (w *WebviewWriter) Attach(host plugin.Host) {
	w.mu.Lock()
	w.host = host
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()

	for _, rec := range pending {
		host.Emit(EventName, rec)
	}
}

// Detach stops emitting; later records are buffered again.
func (w *WebviewWriter) Detach() {
	w.mu.Lock()
	w.host = nil
	w.mu.Unlock()
}

// Pending returns the number of buffered records.
func (w *WebviewWriter) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// eventMessage extracts the message of a zerolog JSON event, prefixed with
// its component when present.
func eventMessage(p []byte) string {
	var ev map[string]any
	if err := json.Unmarshal(p, &ev); err != nil {
		return string(p)
	}
	msg, _ := ev[zerolog.MessageFieldName].(string)
	if comp, ok := ev["component"].(string); ok && comp != "" {
		return "[" + comp + "] " + msg
	}
	return msg
}

func levelNumber(l zerolog.Level) int {
	switch {
	case l <= zerolog.TraceLevel:
		return LevelTrace
	case l == zerolog.DebugLevel:
		return LevelDebug
	case l == zerolog.InfoLevel, l == zerolog.NoLevel:
		return LevelInfo
	case l == zerolog.WarnLevel:
		return LevelWarn
	default:
		return LevelError
	}
}
