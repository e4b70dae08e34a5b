// Package runtime defines the webview runtime the shell hands control to.
//
// A Runtime owns the process main loop: it opens the window described by the
// application context, exposes plugin bindings to the frontend, and blocks
// until the window closes.
package runtime

import (
	"context"

	"github.com/kbukum/gollama/appcontext"
	"github.com/kbukum/gollama/plugin"
)

// Host is the running webview as seen by plugins.
type Host = plugin.Host

// Runtime runs the desktop event loop.
type Runtime interface {
	// Run blocks until the application exits. Plugins are already started.
	Run(ctx context.Context, app *appcontext.Context, plugins []plugin.Plugin) error
}

// Func adapts an ordinary function to the Runtime interface.
type Func func(ctx context.Context, app *appcontext.Context, plugins []plugin.Plugin) error

// Run calls f.
func (f Func) Run(ctx context.Context, app *appcontext.Context, plugins []plugin.Plugin) error {
	return f(ctx, app, plugins)
}
