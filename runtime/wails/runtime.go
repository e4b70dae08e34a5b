// Package wails runs the shell on the Wails v2 webview runtime.
package wails

import (
	"context"
	"errors"
	"net/http"
	"net/http/httputil"
	"sync"

	wailsapp "github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/kbukum/gollama/appcontext"
	"github.com/kbukum/gollama/logger"
	"github.com/kbukum/gollama/plugin"
	"github.com/kbukum/gollama/runtime"
)

var _ runtime.Runtime = (*Runtime)(nil)

// RunFunc starts the Wails application and blocks until it exits.
type RunFunc func(*options.App) error

// Runtime is the Wails-backed runtime.Runtime.
type Runtime struct {
	log *logger.Logger
	run RunFunc
}

// Option configures the runtime.
type Option func(*Runtime)

// WithLogger routes Wails' own log output into l.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runtime) { r.log = l }
}

// WithRunFunc replaces wails.Run.
func WithRunFunc(fn RunFunc) Option {
	return func(r *Runtime) { r.run = fn }
}

// New returns a Wails runtime.
func New(opts ...Option) *Runtime {
	r := &Runtime{run: wailsapp.Run}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.GetGlobalLogger()
	}
	r.log = r.log.WithComponent("runtime")
	return r
}

// Run opens the main window and blocks until it closes. Canceling ctx
// quits the application.
func (r *Runtime) Run(ctx context.Context, app *appcontext.Context, plugins []plugin.Plugin) error {
	opts, err := AppOptions(ctx, app, plugins, r.log)
	if err != nil {
		return err
	}
	r.log.Info("Opening window", logger.Fields(
		"title", opts.Title,
		"source", app.ContentSource().String(),
	))
	return r.run(opts)
}

// AppOptions translates the application context and plugins into Wails
// options.
func AppOptions(ctx context.Context, app *appcontext.Context, plugins []plugin.Plugin, log *logger.Logger) (*options.App, error) {
	if app == nil {
		return nil, errors.New("wails: application context is nil")
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	assets, err := assetOptions(app)
	if err != nil {
		return nil, err
	}

	var (
		stopOnce sync.Once
		stopped  = make(chan struct{})
	)
	win := app.Window()

	return &options.App{
		Title:              win.Title,
		Width:              win.Width,
		Height:             win.Height,
		MinWidth:           win.MinWidth,
		MinHeight:          win.MinHeight,
		DisableResize:      !win.Resizable,
		AssetServer:        assets,
		Bind:               plugin.Bindings(plugins),
		Logger:             newLogAdapter(log),
		LogLevel:           logLevel(log),
		LogLevelProduction: logLevel(log),
		OnStartup: func(wctx context.Context) {
			host := NewHost(wctx)
			go func() {
				select {
				case <-ctx.Done():
					log.Info("Shutdown requested", logger.Fields("reason", ctx.Err().Error()))
					host.Quit()
				case <-stopped:
				}
			}()
		},
		// Events emitted before the page loads have no listener, so plugins
		// get the host once the DOM is ready. A reload attaches again.
		OnDomReady: func(wctx context.Context) {
			plugin.AttachAll(plugins, NewHost(wctx))
		},
		OnShutdown: func(context.Context) {
			stopOnce.Do(func() { close(stopped) })
			log.Debug("Window closed")
		},
	}, nil
}

// assetOptions serves bundled sources from the asset tree and proxies
// external sources.
func assetOptions(app *appcontext.Context) (*assetserver.Options, error) {
	src := app.ContentSource()
	if !src.IsExternal() {
		return &assetserver.Options{Assets: app.ContentAssets()}, nil
	}
	u := src.URL()
	if u == nil || u.Host == "" {
		return nil, errors.New("wails: external content source has no host")
	}
	return &assetserver.Options{Handler: proxy(u.Scheme, u.Host)}, nil
}

func proxy(scheme, host string) http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Scheme = scheme
			pr.Out.URL.Host = host
			pr.Out.Host = host
		},
	}
}
