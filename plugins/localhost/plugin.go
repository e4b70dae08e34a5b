// Package localhost serves the bundled frontend over HTTP on the loopback
// interface, so the webview can load it from http://localhost:<port>.
package localhost

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/kbukum/gollama/logger"
	"github.com/kbukum/gollama/observability"
	"github.com/kbukum/gollama/plugin"
)

// Name is the plugin's registry name.
const Name = "localhost"

var (
	_ plugin.Plugin      = (*Plugin)(nil)
	_ plugin.Describable = (*Plugin)(nil)
)

// Option configures the plugin.
type Option func(*options)

type options struct {
	log     *logger.Logger
	metrics *observability.Metrics
}

// WithLogger sets the logger used by the server and its request logging.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records request counters and durations.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Plugin wraps Server to implement plugin.Plugin.
type Plugin struct {
	server *Server
	port   int
}

// New returns a localhost plugin bound to port and serving assets.
func New(port int, assets fs.FS, opts ...Option) *Plugin {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Plugin{
		server: NewServer(port, assets, o.log, o.metrics),
		port:   port,
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string { return Name }

// Port returns the port the plugin was built for.
func (p *Plugin) Port() int { return p.port }

// Server returns the underlying server.
func (p *Plugin) Server() *Server { return p.server }

// Start binds the listener and starts serving.
func (p *Plugin) Start(ctx context.Context) error {
	return p.server.Start(ctx)
}

// Stop shuts the server down.
func (p *Plugin) Stop(ctx context.Context) error {
	return p.server.Stop(ctx)
}

// Health is healthy while the server is serving.
func (p *Plugin) Health(_ context.Context) plugin.Health {
	if p.server.Serving() {
		return plugin.Health{Name: Name, Status: plugin.StatusHealthy}
	}
	return plugin.Health{
		Name:    Name,
		Status:  plugin.StatusUnhealthy,
		Message: "content server not serving",
	}
}

// Describe returns summary info for the startup display.
func (p *Plugin) Describe() plugin.Description {
	return plugin.Description{
		Name:    "Content Server",
		Type:    "server",
		Details: fmt.Sprintf("http://%s", p.server.Addr()),
		Port:    p.port,
	}
}
