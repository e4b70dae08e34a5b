package bootstrap

import (
	"context"
	"time"

	"github.com/kbukum/gollama/logger"
	"github.com/kbukum/gollama/plugin"
)

// PluginInfo is one line of the startup summary.
type PluginInfo struct {
	Name    string
	Type    string
	Details string
	Port    int
	Status  plugin.HealthStatus
	Message string
}

// Summary collects what the launch brought up.
type Summary struct {
	productName     string
	version         string
	startupDuration time.Duration
	plugins         []PluginInfo
}

// NewSummary creates a summary tracker.
func NewSummary(productName, version string) *Summary {
	return &Summary{productName: productName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Plugins returns the lines collected by the last Collect.
func (s *Summary) Plugins() []PluginInfo { return s.plugins }

// Collect reads descriptions and live health from the registry.
func (s *Summary) Collect(registry *plugin.Registry) {
	s.plugins = s.plugins[:0]
	if registry == nil {
		return
	}
	health := make(map[string]plugin.Health)
	for _, h := range registry.HealthAll(context.Background()) {
		health[h.Name] = h
	}
	for _, p := range registry.All() {
		d := plugin.Describe(p)
		h := health[p.Name()]
		s.plugins = append(s.plugins, PluginInfo{
			Name:    d.Name,
			Type:    d.Type,
			Details: d.Details,
			Port:    d.Port,
			Status:  h.Status,
			Message: h.Message,
		})
	}
}

// DisplaySummary logs the summary, one line per plugin.
func (s *Summary) DisplaySummary(registry *plugin.Registry, log *logger.Logger) {
	s.Collect(registry)

	healthy := 0
	for _, p := range s.plugins {
		if p.Status == plugin.StatusHealthy {
			healthy++
		}
	}
	log.Info("Application started", logger.Fields(
		"name", s.productName,
		"version", s.version,
		"startup_ms", s.startupDuration.Milliseconds(),
		"healthy", healthy,
		"plugins", len(s.plugins),
	))

	for _, p := range s.plugins {
		fields := logger.Fields(
			"type", p.Type,
			"details", p.Details,
			logger.FieldStatus, string(p.Status),
		)
		if p.Port > 0 {
			fields[logger.FieldPort] = p.Port
		}
		if p.Message != "" {
			fields["message"] = p.Message
		}
		if p.Status == plugin.StatusHealthy {
			log.Info("  "+p.Name, fields)
		} else {
			log.Warn("  "+p.Name, fields)
		}
	}
}
