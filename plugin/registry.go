package plugin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/gollama/logger"
)

// StopTimeout bounds each plugin's Stop.
const StopTimeout = 10 * time.Second

// entry holds a plugin and its started state.
type entry struct {
	plugin  Plugin
	started bool
}

// Registry manages plugin lifecycle with deterministic ordering.
type Registry struct {
	entries []*entry
	lookup  map[string]*entry
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make([]*entry, 0),
		lookup:  make(map[string]*entry),
	}
}

// Register appends a plugin. Names must be unique.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if _, exists := r.lookup[name]; exists {
		return fmt.Errorf("plugin %s already registered", name)
	}

	e := &entry{plugin: p}
	r.entries = append(r.entries, e)
	r.lookup[name] = e

	logger.Debug("Plugin registered", logger.Fields(logger.FieldPlugin, name))
	return nil
}

// StartAll starts plugins in registration order and stops at the first failure.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger.Debug("Starting plugins", logger.Fields("count", len(r.entries)))

	for _, e := range r.entries {
		name := e.plugin.Name()
		if e.started {
			continue
		}
		if err := e.plugin.Start(ctx); err != nil {
			logger.Error("Plugin start failed", logger.Fields(
				logger.FieldPlugin, name,
				logger.FieldError, err.Error(),
			))
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		e.started = true
		logger.Debug("Plugin started", logger.Fields(logger.FieldPlugin, name))
	}
	return nil
}

// StopAll stops started plugins in reverse registration order. Every
// plugin gets its own StopTimeout; all errors are collected.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if !e.started {
			continue
		}

		name := e.plugin.Name()
		stopCtx, cancel := context.WithTimeout(ctx, StopTimeout)
		if err := e.plugin.Stop(stopCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
			logger.Error("Plugin stop failed", logger.Fields(
				logger.FieldPlugin, name,
				logger.FieldError, err.Error(),
			))
		} else {
			logger.Debug("Plugin stopped", logger.Fields(logger.FieldPlugin, name))
		}
		e.started = false
		cancel()
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

// HealthAll returns the health of every registered plugin.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]Health, 0, len(r.entries))
	for _, e := range r.entries {
		results = append(results, e.plugin.Health(ctx))
	}
	return results
}

// Get returns a registered plugin by name, or nil if not found.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, exists := r.lookup[name]; exists {
		return e.plugin
	}
	return nil
}

// All returns all registered plugins in registration order.
func (r *Registry) All() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.plugin)
	}
	return result
}

// Names returns plugin names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.plugin.Name())
	}
	return names
}

// Bindings collects the IPC objects of every Binder in plugins.
func Bindings(plugins []Plugin) []any {
	var out []any
	for _, p := range plugins {
		if b, ok := p.(Binder); ok {
			out = append(out, b.Bindings()...)
		}
	}
	return out
}

// AttachAll hands host to every Attacher in plugins.
func AttachAll(plugins []Plugin, host Host) {
	for _, p := range plugins {
		if a, ok := p.(Attacher); ok {
			a.Attach(host)
		}
	}
}

// Describe returns the description of p, falling back to its name.
func Describe(p Plugin) Description {
	d := Description{}
	if desc, ok := p.(Describable); ok {
		d = desc.Describe()
	}
	if d.Name == "" {
		d.Name = p.Name()
	}
	return d
}
