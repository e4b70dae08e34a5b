// Package cli is the command line front end shared by the gollama
// executables. It loads configuration, sets up logging and telemetry,
// launches the shell and turns the outcome into an exit status.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/kbukum/gollama"
	"github.com/kbukum/gollama/appcontext"
	"github.com/kbukum/gollama/bootstrap"
	"github.com/kbukum/gollama/config"
	"github.com/kbukum/gollama/logger"
	"github.com/kbukum/gollama/observability"
	"github.com/kbukum/gollama/runtime"
	"github.com/kbukum/gollama/runtime/wails"
	"github.com/kbukum/gollama/version"
)

// CLI defines the command line flags.
type CLI struct {
	Config   string `name:"config" type:"path" help:"Path to config.yml"`
	EnvFile  string `name:"env-file" type:"path" help:"Path to .env file"`
	LogLevel string `name:"log-level" help:"Log level (trace, debug, info, warn, error)"`
	Version  bool   `name:"version" help:"Show version information and exit"`
}

// Dependencies holds what Run needs from the outside world.
type Dependencies struct {
	// AppName names the executable, its config directory and env prefix.
	AppName string
	Variant bootstrap.Variant

	Out    io.Writer
	ErrOut io.Writer

	// Generate defaults to the embedded application context.
	Generate appcontext.Generator
	// NewRuntime defaults to the Wails runtime.
	NewRuntime bootstrap.RuntimeFactory
	// Launch defaults to bootstrap.Initialize followed by App.Run.
	Launch func(ctx context.Context, opts bootstrap.Options, onStop ...bootstrap.Hook) error
}

func (d *Dependencies) applyDefaults() {
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.ErrOut == nil {
		d.ErrOut = os.Stderr
	}
	if d.Generate == nil {
		d.Generate = gollama.Context
	}
	if d.NewRuntime == nil {
		d.NewRuntime = func(l *logger.Logger) runtime.Runtime {
			return wails.New(wails.WithLogger(l))
		}
	}
	if d.Launch == nil {
		d.Launch = launch
	}
}

// Run parses args and launches the shell. It returns the process exit code.
func Run(ctx context.Context, args []string, deps Dependencies) int {
	deps.applyDefaults()

	var cli CLI
	exited := false
	parser, err := kong.New(&cli,
		kong.Name(deps.AppName),
		kong.Description("Desktop shell for the Gollama chat client."),
		kong.Writers(deps.Out, deps.ErrOut),
		kong.Exit(func(int) { exited = true }),
	)
	if err != nil {
		fmt.Fprintln(deps.ErrOut, err)
		return bootstrap.ExitFailure
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintf(deps.ErrOut, "%s: %v\n", deps.AppName, err)
		return bootstrap.ExitFailure
	}
	if exited {
		return bootstrap.ExitOK
	}

	if cli.Version {
		fmt.Fprintf(deps.Out, "%s %s\n", deps.AppName, version.Get())
		return bootstrap.ExitOK
	}

	cfg, err := loadConfig(deps.AppName, cli)
	if err != nil {
		fmt.Fprintf(deps.ErrOut, "%s: %v\n", deps.AppName, err)
		return bootstrap.ExitFailure
	}
	logger.Init(&cfg.Logging)

	shutdown, err := observability.Setup(ctx, &cfg.Observability)
	if err != nil {
		logger.Warn("Telemetry disabled", logger.Fields(logger.FieldError, err.Error()))
	}
	var metrics *observability.Metrics
	if cfg.Observability.Enabled && err == nil {
		if metrics, err = observability.NewMetrics(observability.Meter(deps.AppName)); err != nil {
			logger.Warn("Metrics disabled", logger.Fields(logger.FieldError, err.Error()))
			metrics = nil
		}
	}

	opts := bootstrap.Options{
		Variant:    deps.Variant,
		Generate:   deps.Generate,
		NewRuntime: deps.NewRuntime,
		Logger:     logger.GetGlobalLogger(),
		Logging:    cfg.Logging,
		Metrics:    metrics,
	}
	err = deps.Launch(ctx, opts, bootstrap.Hook(shutdown))
	if err != nil {
		fmt.Fprintf(deps.ErrOut, "%s: %v\n", deps.AppName, err)
	}
	return bootstrap.ExitCode(err)
}

// loadConfig reads config.yml, .env and the environment, then applies
// flag overrides.
func loadConfig(appName string, cli CLI) (*config.ShellConfig, error) {
	var opts []config.LoaderOption
	if cli.Config != "" {
		opts = append(opts, config.WithConfigFile(cli.Config))
	}
	if cli.EnvFile != "" {
		opts = append(opts, config.WithEnvFile(cli.EnvFile))
	}

	cfg := &config.ShellConfig{Name: appName}
	if err := config.LoadConfig(appName, cfg, opts...); err != nil {
		return nil, err
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func launch(ctx context.Context, opts bootstrap.Options, onStop ...bootstrap.Hook) error {
	app, err := bootstrap.Initialize(ctx, opts)
	if err != nil {
		return err
	}
	app.OnStop(onStop...)
	return app.Run(ctx)
}
