package sql

import (
	"fmt"

	"github.com/kbukum/gollama/database"
	"github.com/kbukum/gollama/database/migration"
	"github.com/kbukum/gollama/validation"
)

// Config holds SQL plugin configuration. The zero value is the default:
// nothing preloaded, no migrations.
type Config struct {
	// Preload lists database URLs opened when the plugin starts.
	Preload []string

	// Migrations maps a database URL to the migrations applied on load.
	Migrations map[string]migration.Source

	// Database tunes every connection the plugin opens. Path is ignored.
	Database database.Config
}

// DefaultConfig returns the configuration used by the shell.
func DefaultConfig() Config {
	return Config{}
}

// Validate checks that every configured URL is a SQLite URL.
func (c *Config) Validate() error {
	for _, u := range c.Preload {
		if !validation.IsDatabaseURL(u) {
			return fmt.Errorf("sql.preload: unsupported database url %q", u)
		}
	}
	for u := range c.Migrations {
		if !validation.IsDatabaseURL(u) {
			return fmt.Errorf("sql.migrations: unsupported database url %q", u)
		}
	}
	return nil
}
