package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MATERNA_CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Simulation.CohortSize != 500 {
		t.Fatalf("cohort size = %d", cfg.Simulation.CohortSize)
	}
	if cfg.Simulation.LearningRate != 0.2 || cfg.Simulation.Iterations != 1500 {
		t.Fatalf("unexpected hyperparameter defaults: %+v", cfg.Simulation)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MATERNA_CONFIG_PATH", "")
	t.Setenv("MATERNA_HTTP_ADDR", ":9090")
	t.Setenv("MATERNA_COHORT_SIZE", "1200")
	t.Setenv("MATERNA_SEED", "42")
	t.Setenv("MATERNA_LEARNING_RATE", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Simulation.CohortSize != 1200 || cfg.Simulation.Seed != 42 || cfg.Simulation.LearningRate != 0.5 {
		t.Fatalf("env overrides not applied: %+v", cfg.Simulation)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	doc := `{
  "env": "production",
  "http": {"addr": ":7070", "read_header_timeout": "3s"},
  "simulation": {"cohort_size": 800, "learning_rate": 0.3, "iterations": 1000}
}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MATERNA_CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "production" || cfg.HTTP.Addr != ":7070" {
		t.Fatalf("file config not applied: %+v", cfg)
	}
	if cfg.HTTP.ReadHeaderTimeout.Duration != 3*time.Second {
		t.Fatalf("duration parse: %v", cfg.HTTP.ReadHeaderTimeout.Duration)
	}
	if cfg.Simulation.CohortSize != 800 {
		t.Fatalf("cohort size = %d", cfg.Simulation.CohortSize)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("MATERNA_CONFIG_PATH", "")
	t.Setenv("MATERNA_COHORT_SIZE", "-5")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative cohort size")
	}
}
