package bootstrap

import (
	"time"

	"github.com/kbukum/gollama/appcontext"
	"github.com/kbukum/gollama/logger"
	"github.com/kbukum/gollama/observability"
	"github.com/kbukum/gollama/portpicker"
	"github.com/kbukum/gollama/runtime"
)

// Variant selects the plugin set.
type Variant int

const (
	// VariantMinimal registers only the localhost content server.
	VariantMinimal Variant = iota
	// VariantExtended adds the SQL and log plugins.
	VariantExtended
)

func (v Variant) String() string {
	switch v {
	case VariantMinimal:
		return "minimal"
	case VariantExtended:
		return "extended"
	default:
		return "unknown"
	}
}

// RuntimeFactory builds the runtime once the application context exists.
type RuntimeFactory func(log *logger.Logger) runtime.Runtime

// Options configures Initialize.
type Options struct {
	// Variant selects the plugin set.
	Variant Variant

	// Picker chooses the content port. Defaults to portpicker.Default.
	Picker portpicker.Picker

	// Generate produces the application context builder. Required.
	Generate appcontext.Generator

	// NewRuntime builds the runtime. Required.
	NewRuntime RuntimeFactory

	// Logger is used until the log plugin takes over. Defaults to the
	// global logger.
	Logger *logger.Logger

	// Logging sets the level and colors of the log plugin.
	Logging logger.Config

	// Metrics, when set, is shared by plugins that record metrics.
	Metrics *observability.Metrics

	// DataDir overrides the SQL plugin's data directory.
	DataDir string

	// LogDir overrides the platform log directory.
	LogDir string

	// GracefulTimeout bounds plugin shutdown. Defaults to 15s.
	GracefulTimeout time.Duration
}

func (o *Options) applyDefaults() {
	if o.Picker == nil {
		o.Picker = portpicker.Default
	}
	if o.Logger == nil {
		o.Logger = logger.GetGlobalLogger()
	}
	if o.GracefulTimeout <= 0 {
		o.GracefulTimeout = 15 * time.Second
	}
}
