package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/gollama/appcontext"
	apperrors "github.com/kbukum/gollama/errors"
	"github.com/kbukum/gollama/logger"
	"github.com/kbukum/gollama/plugin"
	"github.com/kbukum/gollama/runtime"
)

// App is an initialized launch: a port, the context pointing at it, the
// registered plugins and the runtime that will host them.
type App struct {
	Port    int
	Context *appcontext.Context
	Plugins *plugin.Registry
	Runtime runtime.Runtime
	Logger  *logger.Logger
	Summary *Summary
	Variant Variant

	gracefulTimeout time.Duration

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// Initialize picks a port, builds the application context with
// http://localhost:<port> as its content source, registers the variant's
// plugins and constructs the runtime. Nothing is started.
func Initialize(_ context.Context, opts Options) (*App, error) {
	opts.applyDefaults()
	if opts.Generate == nil {
		return nil, apperrors.ContextGeneration("no context generator", nil)
	}
	if opts.NewRuntime == nil {
		return nil, apperrors.RuntimeStart(errors.New("no runtime factory"))
	}

	port, err := opts.Picker.Pick()
	if err != nil {
		return nil, apperrors.PortUnavailable(err)
	}
	if port <= 0 || port > 65535 {
		return nil, apperrors.PortUnavailable(fmt.Errorf("picker returned invalid port %d", port))
	}

	builder, err := opts.Generate()
	if err != nil {
		return nil, apperrors.ContextGeneration("generate", err)
	}
	u, err := url.Parse(fmt.Sprintf("http://localhost:%d", port))
	if err != nil {
		return nil, apperrors.ContextGeneration("content url", err)
	}
	appCtx, err := builder.WithContentSource(appcontext.External(u)).Build()
	if err != nil {
		return nil, apperrors.ContextGeneration("build", err)
	}

	plugins, log, err := buildPlugins(appCtx, port, opts)
	if err != nil {
		return nil, err
	}
	registry := plugin.NewRegistry()
	for _, p := range plugins {
		if err := registry.Register(p); err != nil {
			return nil, apperrors.RuntimeStart(err)
		}
	}

	log.Debug("Application initialized", logger.Fields(
		logger.FieldPort, port,
		"variant", opts.Variant.String(),
		"plugins", registry.Names(),
	))

	return &App{
		Port:            port,
		Context:         appCtx,
		Plugins:         registry,
		Runtime:         opts.NewRuntime(log),
		Logger:          log,
		Summary:         NewSummary(appCtx.ProductName(), appCtx.Version()),
		Variant:         opts.Variant,
		gracefulTimeout: opts.GracefulTimeout,
	}, nil
}

// Start initializes and runs the application.
func Start(ctx context.Context, opts Options) error {
	app, err := Initialize(ctx, opts)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

// Run starts the plugins, hands control to the runtime until the window
// closes, then stops the plugins. SIGINT and SIGTERM end the runtime.
func (a *App) Run(ctx context.Context) error {
	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	start := time.Now()
	a.Logger.Info("Starting application", logger.Fields(
		"name", a.Context.ProductName(),
		"version", a.Context.Version(),
		logger.FieldPort, a.Port,
	))

	if err := a.Plugins.StartAll(ctx); err != nil {
		return a.abort(err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return a.abort(fmt.Errorf("onStart hook failed: %w", err))
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}
	if err := runHooks(ctx, a.onReady); err != nil {
		return a.abort(fmt.Errorf("onReady hook failed: %w", err))
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.DisplaySummary()

	runErr := a.Runtime.Run(ctx, a.Context, a.Plugins.All())
	stopErr := a.stop()
	if runErr != nil {
		a.Logger.Error("Runtime failed", logger.Fields(logger.FieldError, runErr.Error()))
		return apperrors.RuntimeStart(runErr)
	}
	return stopErr
}

// ReadyCheck verifies that all registered plugins are healthy.
func (a *App) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Plugins.HealthAll(ctx) {
		if h.Status != plugin.StatusHealthy {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy plugins: %v", unhealthy)
	}
	return nil
}

// DisplaySummary logs the startup summary.
func (a *App) DisplaySummary() {
	a.Summary.DisplaySummary(a.Plugins, a.Logger)
}

// abort stops whatever started and reports cause together with any
// shutdown errors.
func (a *App) abort(cause error) error {
	if stopErr := a.stop(); stopErr != nil {
		cause = errors.Join(cause, fmt.Errorf("shutdown: %w", stopErr))
	}
	return apperrors.RuntimeStart(cause)
}

// stop runs the stop hooks and stops every started plugin within the
// graceful timeout.
func (a *App) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var errs []error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.Fields(logger.FieldError, err.Error()))
		errs = append(errs, err)
	}
	if err := a.Plugins.StopAll(ctx); err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		errs = append(errs, err)
	}

	a.Logger.Info("Application shutdown complete")
	return errors.Join(errs...)
}
