// Package log routes the shell's logging into a configurable set of
// targets: the terminal, a file in the platform log directory, and the
// webview itself.
//
// Starting the plugin replaces the global logger, so every component that
// logs through the logger package writes to the same sinks.
package log

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kbukum/gollama/logger"
	"github.com/kbukum/gollama/plugin"
)

// Name is the plugin's registry name.
const Name = "log"

var (
	_ plugin.Plugin      = (*Plugin)(nil)
	_ plugin.Binder      = (*Plugin)(nil)
	_ plugin.Attacher    = (*Plugin)(nil)
	_ plugin.Describable = (*Plugin)(nil)
)

// Config configures the log plugin.
type Config struct {
	// Targets are the sinks, in order. Duplicates are dropped.
	Targets []Target
	// Identifier selects the platform log directory for LogDir.
	Identifier string
	// ProductName names the log file and tags console lines.
	ProductName string
	// Dir overrides the platform log directory.
	Dir string
	// Logging controls level and console colors.
	Logging logger.Config
}

// Plugin owns the log sinks.
type Plugin struct {
	cfg     Config
	targets []Target
	webview *WebviewWriter

	sink     *switchWriter
	fallback zerolog.LevelWriter
	files    []*os.File
	previous *logger.Logger
	log      *logger.Logger
	started  bool
}

// New creates the log plugin.
func New(cfg Config) *Plugin {
	cfg.Logging.ApplyDefaults()
	if cfg.ProductName == "" {
		cfg.ProductName = cfg.Identifier
	}
	fallback := zerolog.MultiLevelWriter(logger.ConsoleWriter(&cfg.Logging, os.Stderr, cfg.ProductName))
	sink := newSwitchWriter(fallback)
	return &Plugin{
		cfg:      cfg,
		targets:  dedupe(cfg.Targets),
		webview:  NewWebviewWriter(),
		sink:     sink,
		fallback: fallback,
		log:      logger.NewWithWriter(&cfg.Logging, cfg.ProductName, sink),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string { return Name }

// Targets returns the configured targets in order.
func (p *Plugin) Targets() []Target {
	out := make([]Target, len(p.targets))
	copy(out, p.targets)
	return out
}

// Logger returns the plugin's logger. It writes to stderr until Start and
// to the configured targets after.
func (p *Plugin) Logger() *logger.Logger { return p.log }

// Start opens every sink and installs the fan-out logger globally.
func (p *Plugin) Start(_ context.Context) error {
	writers := make([]io.Writer, 0, len(p.targets))
	for _, t := range p.targets {
		w, err := p.openTarget(t)
		if err != nil {
			p.closeFiles()
			return fmt.Errorf("log target %s: %w", t, err)
		}
		writers = append(writers, w)
	}

	p.sink.set(zerolog.MultiLevelWriter(writers...))
	p.previous = logger.GetGlobalLogger()
	logger.Replace(p.log)
	logger.Register(FrontendComponent, p.log.WithComponent(FrontendComponent))
	p.started = true

	p.log.Debug("Log targets ready", logger.Fields("targets", targetNames(p.targets)))
	return nil
}

// Stop restores the previous global logger and closes log files.
func (p *Plugin) Stop(_ context.Context) error {
	if !p.started {
		return nil
	}
	p.started = false
	p.webview.Detach()
	p.sink.set(p.fallback)
	if p.previous != nil {
		logger.Replace(p.previous)
	}
	return p.closeFiles()
}

// Health is healthy while the sinks are open.
func (p *Plugin) Health(_ context.Context) plugin.Health {
	if p.started {
		return plugin.Health{Name: Name, Status: plugin.StatusHealthy}
	}
	return plugin.Health{Name: Name, Status: plugin.StatusUnhealthy, Message: "not started"}
}

// Describe returns summary info for the startup display.
func (p *Plugin) Describe() plugin.Description {
	return plugin.Description{
		Name:    "Log",
		Type:    "logging",
		Details: fmt.Sprintf("level=%s targets=%s", p.cfg.Logging.Level, targetNames(p.targets)),
	}
}

// Attach starts forwarding records to the webview.
func (p *Plugin) Attach(host plugin.Host) {
	p.webview.Attach(host)
}

// Bindings exposes the Bridge to the frontend.
func (p *Plugin) Bindings() []any {
	return []any{&Bridge{}}
}

// Webview returns the webview writer.
func (p *Plugin) Webview() *WebviewWriter { return p.webview }

func (p *Plugin) openTarget(t Target) (io.Writer, error) {
	switch t.Kind {
	case KindStdout:
		return logger.ConsoleWriter(&p.cfg.Logging, os.Stdout, p.cfg.ProductName), nil
	case KindStderr:
		return logger.ConsoleWriter(&p.cfg.Logging, os.Stderr, p.cfg.ProductName), nil
	case KindWebview:
		return p.webview, nil
	case KindLogDir:
		dir := p.cfg.Dir
		if dir == "" {
			var err error
			if dir, err = Dir(p.cfg.Identifier); err != nil {
				return nil, err
			}
		}
		return p.openFile(dir)
	case KindFolder:
		return p.openFile(t.Path)
	default:
		return nil, fmt.Errorf("unknown target kind %d", t.Kind)
	}
}

// openFile opens <dir>/<product>.log for appending.
func (p *Plugin) openFile(dir string) (io.Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(p.FilePath(dir), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	p.files = append(p.files, f)
	return f, nil
}

// FilePath returns the log file inside dir.
func (p *Plugin) FilePath(dir string) string {
	return filepath.Join(dir, p.cfg.ProductName+".log")
}

func (p *Plugin) closeFiles() error {
	var errs []error
	for _, f := range p.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	p.files = nil
	return stderrors.Join(errs...)
}

func targetNames(targets []Target) string {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}
