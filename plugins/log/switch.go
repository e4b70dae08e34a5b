package log

import (
	"sync"

	"github.com/rs/zerolog"
)

// switchWriter forwards events to a replaceable LevelWriter, so loggers
// handed out before Start pick up the real sinks once they open.
type switchWriter struct {
	mu sync.RWMutex
	w  zerolog.LevelWriter
}

func newSwitchWriter(w zerolog.LevelWriter) *switchWriter {
	return &switchWriter{w: w}
}

func (s *switchWriter) set(w zerolog.LevelWriter) {
	s.mu.Lock()
	s.w = w
	s.mu.Unlock()
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w.Write(p)
}

func (s *switchWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w.WriteLevel(l, p)
}
