package config

import (
	"fmt"

	"github.com/kbukum/gollama/logger"
	"github.com/kbukum/gollama/observability"
)

// ShellConfig contains the configuration every shell entry point needs.
//
// Example config.yml:
//
//	name: gollama
//	environment: production
//	logging:
//	  level: debug
//	observability:
//	  enabled: true
//	  endpoint: localhost:4318
type ShellConfig struct {
	Name          string               `yaml:"name" mapstructure:"name"`
	Environment   string               `yaml:"environment" mapstructure:"environment"`
	Debug         bool                 `yaml:"debug" mapstructure:"debug"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// GetShellConfig returns the base ShellConfig. When embedded in a larger
// config struct this method is promoted.
func (c *ShellConfig) GetShellConfig() *ShellConfig {
	return c
}

// ApplyDefaults applies default values to the configuration.
func (c *ShellConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "production"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	// Propagate the name into logging so Init() uses the right tag.
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	c.Observability.ApplyDefaults()
}

// Validate validates the configuration fields.
func (c *ShellConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}
