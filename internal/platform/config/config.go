// Package config provides configuration loading for the marketplace server.
//
// Configuration is loaded from a single YAML file specified by:
//   - the ROBUX_SITE_CONFIG environment variable, or
//   - the --config flag passed to the server
//
// There is no automatic discovery. If no file is specified the built-in
// defaults are used, which are suitable for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvVar is the environment variable naming the config file.
const EnvVar = "ROBUX_SITE_CONFIG"

// Config is the master configuration for the server.
type Config struct {
	// Server configures the HTTP listener.
	Server ServerConfig `yaml:"server"`

	// Database configures SQLite storage.
	Database DatabaseConfig `yaml:"database"`

	// Session configures login session lifetime.
	Session SessionConfig `yaml:"session"`

	// Orders configures order handling.
	Orders OrdersConfig `yaml:"orders"`

	// Seed configures accounts and catalog rows created on first run.
	Seed SeedConfig `yaml:"seed"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `yaml:"log_level"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig configures SQLite storage.
type DatabaseConfig struct {
	// Path is the SQLite database file. The parent directory must exist.
	Path string `yaml:"path"`

	// PoolSize is the number of pooled connections. Defaults to 4.
	PoolSize int `yaml:"pool_size"`
}

// SessionConfig configures login sessions.
type SessionConfig struct {
	// TTL is how long a session stays valid after login.
	TTL time.Duration `yaml:"ttl"`
}

// OrdersConfig configures order handling.
type OrdersConfig struct {
	// StatusLabels is the set of status labels offered to the seller UI.
	// The set is advisory only: setStatus accepts any label, matching the
	// free-form status column.
	StatusLabels []string `yaml:"status_labels"`
}

// SeedConfig lists rows created on first run, when the database is empty.
type SeedConfig struct {
	// Sellers are the only accounts that ever receive the seller role.
	// Registration through the API always creates buyers.
	Sellers []SeedAccount `yaml:"sellers"`
}

// SeedAccount is a seeded login.
type SeedAccount struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Default returns the built-in development configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "",
			Port: 3000,
		},
		Database: DatabaseConfig{
			Path:     "data.db",
			PoolSize: 4,
		},
		Session: SessionConfig{
			TTL: 24 * time.Hour,
		},
		Orders: OrdersConfig{
			StatusLabels: []string{"pending", "confirmed", "cancelled"},
		},
		Seed: SeedConfig{
			Sellers: []SeedAccount{
				{Email: "seller@store.test", Password: "sellerpass"},
			},
		},
		LogLevel: "info",
	}
}

// Load reads the config file at path, applying defaults for absent fields.
// If path is empty, the ROBUX_SITE_CONFIG environment variable is consulted;
// if that is also empty, Default() is returned.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	return nil
}
