package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  port: "9090"
game:
  mode: mixed
persistence:
  workers: 2
  queue_size: 32
  timeout: 3s
auth:
  jwt_secret: from-file
  redirect_base_url: https://quiz.example.com
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Game.Mode != "mixed" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Persistence.Workers != 2 || cfg.Persistence.QueueSize != 32 {
		t.Fatalf("unexpected persistence config %+v", cfg.Persistence)
	}
	if cfg.Auth.JWTSecret != "from-file" || cfg.Auth.RedirectBaseURL != "https://quiz.example.com" {
		t.Fatalf("unexpected auth config %+v", cfg.Auth)
	}
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("expected env secret, got %q", cfg.Auth.JWTSecret)
	}
}

func TestTTLDuration(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := TTLDuration("garbage", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback on parse error, got %v", got)
	}
	if got := TTLDuration("90s", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
}
