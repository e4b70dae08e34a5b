package database

import (
	"fmt"
	"time"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Config holds SQLite connection configuration.
type Config struct {
	// Path is the database file, or MemoryPath.
	Path string `mapstructure:"path"`

	// MaxOpenConns sets the maximum number of open connections. In-memory
	// databases are always limited to one so every query sees the same data.
	MaxOpenConns int `mapstructure:"max_open_conns"`

	// MaxIdleConns sets the maximum number of idle connections in the pool.
	MaxIdleConns int `mapstructure:"max_idle_conns"`

	// ConnMaxIdleTime is the maximum time a connection may sit idle (e.g. "5m").
	// If empty, no idle timeout is set.
	ConnMaxIdleTime string `mapstructure:"conn_max_idle_time"`

	// BusyTimeout is how long SQLite waits on a locked database (e.g. "5s").
	BusyTimeout string `mapstructure:"busy_timeout"`

	// MaxRetries is the number of open attempts before giving up.
	MaxRetries int `mapstructure:"max_retries"`

	// RetryBackoff is the first delay between attempts. It doubles after
	// each failure.
	RetryBackoff string `mapstructure:"retry_backoff"`

	// LogLevel is the GORM log level: silent, error, warn, info.
	LogLevel string `mapstructure:"log_level"`

	// SlowQueryThreshold is the duration above which queries are logged as slow (e.g. "200ms").
	SlowQueryThreshold string `mapstructure:"slow_query_threshold"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 4
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 1
	}
	if c.IsMemory() {
		c.MaxOpenConns = 1
		c.MaxIdleConns = 1
		c.ConnMaxIdleTime = ""
	}
	if c.BusyTimeout == "" {
		c.BusyTimeout = "5s"
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryBackoff == "" {
		c.RetryBackoff = "200ms"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.SlowQueryThreshold == "" {
		c.SlowQueryThreshold = "200ms"
	}
}

// IsMemory reports whether the database lives in memory only.
func (c *Config) IsMemory() bool {
	return c.Path == MemoryPath
}

// Validate checks that required fields are present and parseable.
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max_open_conns must be > 0")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf("max_idle_conns (%d) must be <= max_open_conns (%d)", c.MaxIdleConns, c.MaxOpenConns)
	}
	for name, value := range map[string]string{
		"conn_max_idle_time":   c.ConnMaxIdleTime,
		"busy_timeout":         c.BusyTimeout,
		"retry_backoff":        c.RetryBackoff,
		"slow_query_threshold": c.SlowQueryThreshold,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, value, err)
		}
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("max_retries must be > 0")
	}
	return nil
}

// DSN renders the go-sqlite3 connection string.
func (c *Config) DSN() string {
	busy, err := time.ParseDuration(c.BusyTimeout)
	if err != nil {
		busy = 5 * time.Second
	}
	if c.IsMemory() {
		return fmt.Sprintf("file::memory:?_busy_timeout=%d&_foreign_keys=on", busy.Milliseconds())
	}
	return fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on", c.Path, busy.Milliseconds())
}
