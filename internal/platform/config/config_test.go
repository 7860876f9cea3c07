package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RobuxEmperium/robux-site/internal/platform/config"
)

func TestLoad_NoPathUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "data.db" {
		t.Errorf("expected default database path, got %q", cfg.Database.Path)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("expected default session ttl, got %v", cfg.Session.TTL)
	}
	if len(cfg.Seed.Sellers) == 0 {
		t.Error("expected a default seller account")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 8080
database:
  path: /tmp/shop.db
session:
  ttl: 1h
seed:
  sellers:
    - email: ops@store.test
      password: secret
log_level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/shop.db" {
		t.Errorf("expected overridden database path, got %q", cfg.Database.Path)
	}
	if cfg.Session.TTL != time.Hour {
		t.Errorf("expected 1h ttl, got %v", cfg.Session.TTL)
	}
	if len(cfg.Seed.Sellers) != 1 || cfg.Seed.Sellers[0].Email != "ops@store.test" {
		t.Errorf("unexpected sellers: %+v", cfg.Seed.Sellers)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %q", cfg.LogLevel)
	}

	// Fields absent from the file keep their defaults.
	if cfg.Database.PoolSize != 4 {
		t.Errorf("expected default pool size, got %d", cfg.Database.PoolSize)
	}
}

func TestLoad_EnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv(config.EnvVar, path)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port from env-named file, got %d", cfg.Server.Port)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "bad yaml", data: "server: ["},
		{name: "port out of range", data: "server:\n  port: 70000\n"},
		{name: "negative ttl", data: "session:\n  ttl: -5m\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o600); err != nil {
				t.Fatalf("writing config: %v", err)
			}

			if _, err := config.Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
