package log

import (
	"fmt"

	apperrors "github.com/kbukum/gollama/errors"
	"github.com/kbukum/gollama/logger"
)

// FrontendComponent names the logger that frontend messages are written to.
const FrontendComponent = "webview"

// Bridge lets the frontend write into the shell's log sinks.
type Bridge struct{}

// Log writes message at level (1 trace to 5 error). location is the
// frontend call site, if known. Before Start the message goes to the
// global logger.
func (b *Bridge) Log(level int, message, location string) error {
	l := logger.Get(FrontendComponent)

	var fields []map[string]interface{}
	if location != "" {
		fields = append(fields, logger.Fields("location", location))
	}

	switch level {
	case LevelTrace:
		l.Trace(message, fields...)
	case LevelDebug:
		l.Debug(message, fields...)
	case LevelInfo:
		l.Info(message, fields...)
	case LevelWarn:
		l.Warn(message, fields...)
	case LevelError:
		l.Error(message, fields...)
	default:
		return apperrors.InvalidInput("level", fmt.Sprintf("log level %d out of range 1..5", level))
	}
	return nil
}
