// Package logger provides structured logging for the shell using zerolog.
//
// A Logger can write to a single stream (stdout/stderr) or to any io.Writer,
// which is how the logging plugin fans one logger out to several sinks.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.Get("sql")
//	log.Info("database loaded", map[string]interface{}{"db": url})
package logger
