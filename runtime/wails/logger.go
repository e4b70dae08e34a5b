package wails

import (
	"github.com/rs/zerolog"
	wailslogger "github.com/wailsapp/wails/v2/pkg/logger"

	"github.com/kbukum/gollama/logger"
)

// logAdapter implements the Wails logger interface on top of logger.Logger.
type logAdapter struct {
	log *logger.Logger
}

var _ wailslogger.Logger = (*logAdapter)(nil)

func newLogAdapter(l *logger.Logger) *logAdapter {
	return &logAdapter{log: l.WithComponent("wails")}
}

func (a *logAdapter) Print(message string)   { a.log.Info(message) }
func (a *logAdapter) Trace(message string)   { a.log.Trace(message) }
func (a *logAdapter) Debug(message string)   { a.log.Debug(message) }
func (a *logAdapter) Info(message string)    { a.log.Info(message) }
func (a *logAdapter) Warning(message string) { a.log.Warn(message) }
func (a *logAdapter) Error(message string)   { a.log.Error(message) }

// Fatal is logged as an error; Wails decides whether to exit.
func (a *logAdapter) Fatal(message string) {
	a.log.Error(message, logger.Fields("fatal", true))
}

// logLevel mirrors the shell logger's level so Wails does not drop what
// the shell would keep.
func logLevel(l *logger.Logger) wailslogger.LogLevel {
	switch lvl := l.GetLogger().GetLevel(); {
	case lvl <= zerolog.TraceLevel:
		return wailslogger.TRACE
	case lvl == zerolog.DebugLevel:
		return wailslogger.DEBUG
	case lvl == zerolog.InfoLevel:
		return wailslogger.INFO
	case lvl == zerolog.WarnLevel:
		return wailslogger.WARNING
	default:
		return wailslogger.ERROR
	}
}
