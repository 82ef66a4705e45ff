package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testYAML = `app:
  port: 9090
  gin_mode: release
  debug: false

database:
  dsn: "host=localhost user=app dbname=app"

redis:
  addr: "localhost:6379"
  db: 2

jwt:
  secret: "file-secret"
  issuer: "academysvc"
  access_ttl: "30m"
  refresh_ttl: "168h"

user_guard:
  password_min_length: 10

admin_guard:
  password_min_length: 0

cors:
  allowed_origins:
    - "http://localhost:3000"

two_factor:
  ttl: "5m"
  length: 6
  max_attempts: 5
  resend_window: "60s"

casbin:
  model_path: "config/casbin_model.conf"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	cfg, err := LoadFrom(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.AccessTTL != 30*time.Minute {
		t.Errorf("AccessTTL = %v, want 30m", cfg.AccessTTL)
	}
	if cfg.RefreshTTL != 168*time.Hour {
		t.Errorf("RefreshTTL = %v, want 168h", cfg.RefreshTTL)
	}
	if cfg.UserPasswordMin != 10 {
		t.Errorf("UserPasswordMin = %d, want 10", cfg.UserPasswordMin)
	}
	// Zero falls back to the default.
	if cfg.AdminPasswordMin != 6 {
		t.Errorf("AdminPasswordMin = %d, want default 6", cfg.AdminPasswordMin)
	}
	if cfg.TwoFactorTTL != 5*time.Minute {
		t.Errorf("TwoFactorTTL = %v, want 5m", cfg.TwoFactorTTL)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")

	cfg, err := LoadFrom(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.JWTSecret != "env-secret" {
		t.Errorf("JWTSecret = %q, env must override the file", cfg.JWTSecret)
	}
	if cfg.RedisAddr != "redis.internal:6379" {
		t.Errorf("RedisAddr = %q, env must override the file", cfg.RedisAddr)
	}
}

func TestLoadFrom_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
			t.Error("LoadFrom() should fail for a missing file")
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeConfig(t, `app:
  port: 8080
jwt:
  access_ttl: "not-a-duration"
  refresh_ttl: "1h"
two_factor:
  ttl: "5m"
  resend_window: "60s"
`)
		if _, err := LoadFrom(path); err == nil {
			t.Error("LoadFrom() should reject an unparseable duration")
		}
	})
}
