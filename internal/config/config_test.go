package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Pedigree.DefaultGenerations != 3 {
		t.Fatalf("expected default generations 3, got %d", cfg.Pedigree.DefaultGenerations)
	}
	if cfg.Links.RequestTTL != 30*24*time.Hour {
		t.Fatalf("expected 30d request ttl, got %s", cfg.Links.RequestTTL)
	}
	if cfg.Links.ExchangeCodeTTL != 14*24*time.Hour {
		t.Fatalf("expected 14d exchange code ttl, got %s", cfg.Links.ExchangeCodeTTL)
	}
	if cfg.COI.ModerateAt != 0.0625 || cfg.COI.CriticalAt != 0.25 {
		t.Fatalf("unexpected coi thresholds: %+v", cfg.COI)
	}
	if cfg.Auth.Mode != "dev" {
		t.Fatalf("expected dev auth mode, got %q", cfg.Auth.Mode)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pedigree.yaml")
	yaml := []byte("pedigree:\n  default_generations: 4\n  max_generations: 8\nlinks:\n  request_ttl: 48h\n")
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PEDIGREE_PEDIGREE_MAX_GENERATIONS", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Pedigree.DefaultGenerations != 4 {
		t.Fatalf("expected 4 from file, got %d", cfg.Pedigree.DefaultGenerations)
	}
	if cfg.Pedigree.MaxGenerations != 12 {
		t.Fatalf("expected env override 12, got %d", cfg.Pedigree.MaxGenerations)
	}
	if cfg.Links.RequestTTL != 48*time.Hour {
		t.Fatalf("expected 48h, got %s", cfg.Links.RequestTTL)
	}
}

func TestValidate_JWTModeRequiresSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())
	t.Setenv("PEDIGREE_AUTH_MODE", "jwt")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without jwt secret")
	}
}
