// Package bootstrap launches the desktop shell.
//
// A launch picks an unused local port, builds the application context with
// http://localhost:<port> as the window's content source, registers the
// plugins of the chosen variant and hands control to the runtime:
//
//	app, err := bootstrap.Initialize(ctx, bootstrap.Options{
//	    Variant:    bootstrap.VariantExtended,
//	    Generate:   gollama.Context,
//	    NewRuntime: func(l *logger.Logger) runtime.Runtime { return wails.New(wails.WithLogger(l)) },
//	})
//	if err == nil {
//	    err = app.Run(ctx)
//	}
//	os.Exit(bootstrap.ExitCode(err))
//
// Nothing in this package exits the process; entry points map the returned
// error to an exit status with ExitCode.
package bootstrap
