package bootstrap

import (
	"github.com/kbukum/gollama/appcontext"
	apperrors "github.com/kbukum/gollama/errors"
	"github.com/kbukum/gollama/logger"
	"github.com/kbukum/gollama/plugin"
	"github.com/kbukum/gollama/plugins/localhost"
	logplugin "github.com/kbukum/gollama/plugins/log"
	sqlplugin "github.com/kbukum/gollama/plugins/sql"
)

// ExtendedLogTargets are the log targets of the extended variant.
func ExtendedLogTargets() []logplugin.Target {
	return []logplugin.Target{logplugin.LogDir, logplugin.Stdout, logplugin.Webview}
}

// buildPlugins returns the variant's plugins in registration order and the
// logger the rest of the launch should use.
func buildPlugins(app *appcontext.Context, port int, opts Options) ([]plugin.Plugin, *logger.Logger, error) {
	log := opts.Logger
	if opts.Variant != VariantExtended {
		return []plugin.Plugin{
			localhost.New(port, app.Assets(), localhost.WithLogger(log), localhost.WithMetrics(opts.Metrics)),
		}, log, nil
	}

	logp := logplugin.New(logplugin.Config{
		Targets:     ExtendedLogTargets(),
		Identifier:  app.Identifier(),
		ProductName: app.ProductName(),
		Dir:         opts.LogDir,
		Logging:     opts.Logging,
	})
	log = logp.Logger()

	dataDir := opts.DataDir
	if dataDir == "" {
		var err error
		if dataDir, err = sqlplugin.DataDir(app.Identifier()); err != nil {
			return nil, nil, apperrors.RuntimeStart(err)
		}
	}

	return []plugin.Plugin{
		localhost.New(port, app.Assets(), localhost.WithLogger(log), localhost.WithMetrics(opts.Metrics)),
		sqlplugin.New(sqlplugin.DefaultConfig(),
			sqlplugin.WithLogger(log),
			sqlplugin.WithMetrics(opts.Metrics),
			sqlplugin.WithDataDir(dataDir),
		),
		logp,
	}, log, nil
}
