package plugin

import "context"

// HealthStatus represents the health state of a plugin.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a plugin.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Plugin is a lifecycle-managed extension of the shell.
type Plugin interface {
	// Name returns the unique plugin name ("localhost", "sql", "log").
	Name() string

	// Start acquires the plugin's resources. It returns once the plugin is usable.
	Start(ctx context.Context) error

	// Stop releases the plugin's resources.
	Stop(ctx context.Context) error

	// Health returns the current health status of the plugin.
	Health(ctx context.Context) Health
}

// Host is the running webview as seen by plugins.
type Host interface {
	// Emit sends an event to the frontend.
	Emit(event string, data ...any)
	// Quit asks the runtime to close the application.
	Quit()
}

// Binder is implemented by plugins that expose objects to the frontend over IPC.
type Binder interface {
	Bindings() []any
}

// Attacher is implemented by plugins that need the host once the runtime is up.
type Attacher interface {
	Attach(host Host)
}

// Description holds summary information for the startup display.
type Description struct {
	// Name is the display name. If empty, the plugin's Name() is used.
	Name string
	// Type categorizes the plugin: "server", "database", "logging".
	Type string
	// Details is a one-liner such as "127.0.0.1:18080 dist=frontend/dist".
	Details string
	// Port is the primary port, 0 if not applicable.
	Port int
}

// Describable is optionally implemented by plugins that report themselves
// in the startup summary.
type Describable interface {
	Describe() Description
}
