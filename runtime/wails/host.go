package wails

import (
	"context"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/kbukum/gollama/plugin"
)

// Host is a plugin.Host backed by the Wails runtime context.
type Host struct {
	ctx context.Context
}

var _ plugin.Host = (*Host)(nil)

// NewHost wraps the context Wails passes to OnStartup.
func NewHost(ctx context.Context) *Host {
	return &Host{ctx: ctx}
}

// Emit sends an event to the frontend.
func (h *Host) Emit(event string, data ...any) {
	wailsruntime.EventsEmit(h.ctx, event, data...)
}

// Quit closes the application.
func (h *Host) Quit() {
	wailsruntime.Quit(h.ctx)
}
