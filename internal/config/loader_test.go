package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromDefaults(t *testing.T) {
	t.Setenv("RENTORA_JWT_SECRET", "test-secret")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load with missing yaml: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want default 8080", cfg.Server.Port)
	}
	if cfg.Auth.TokenExpiry != 24*time.Hour {
		t.Errorf("token expiry = %v, want 24h", cfg.Auth.TokenExpiry)
	}
	if cfg.Auth.JWTSecret != "test-secret" {
		t.Errorf("jwt secret not taken from env")
	}
}

func TestLoadFromYAML(t *testing.T) {
	t.Setenv("RENTORA_JWT_SECRET", "test-secret")

	path := filepath.Join(t.TempDir(), "rentora.yaml")
	yaml := `
server:
  port: "9090"
postgres:
  max_conns: 30
cache:
  property_ttl: 90s
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Postgres.MaxConns != 30 {
		t.Errorf("max_conns = %d, want 30", cfg.Postgres.MaxConns)
	}
	if cfg.Cache.PropertyTTL != 90*time.Second {
		t.Errorf("property_ttl = %v, want 90s", cfg.Cache.PropertyTTL)
	}
	// Untouched values keep their defaults.
	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("nats url = %q", cfg.NATS.URL)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	t.Setenv("RENTORA_JWT_SECRET", "test-secret")
	t.Setenv("RENTORA_PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://env-wins")
	t.Setenv("RENTORA_TOKEN_EXPIRY", "2h")

	path := filepath.Join(t.TempDir(), "rentora.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"9090\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("port = %q, env must override yaml", cfg.Server.Port)
	}
	if cfg.Postgres.DSN != "postgres://env-wins" {
		t.Errorf("dsn = %q", cfg.Postgres.DSN)
	}
	if cfg.Auth.TokenExpiry != 2*time.Hour {
		t.Errorf("token expiry = %v, want 2h", cfg.Auth.TokenExpiry)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("RENTORA_JWT_SECRET", "")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error when jwt secret is unset")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Setenv("RENTORA_JWT_SECRET", "test-secret")

	path := filepath.Join(t.TempDir(), "rentora.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}
