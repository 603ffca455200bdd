package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.SessionTTL != 30*time.Minute || cfg.SweepInterval != time.Minute {
		t.Fatalf("unexpected durations: %v %v", cfg.SessionTTL, cfg.SweepInterval)
	}
	if cfg.StrictSteps || cfg.MaxMutations != 500 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("WIZARD_SESSION_TTL", "2h")
	t.Setenv("WIZARD_STRICT_STEPS", "true")
	t.Setenv("WIZARD_MAX_MUTATIONS", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.SessionTTL != 2*time.Hour || !cfg.StrictSteps || cfg.MaxMutations != 10 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := map[string][2]string{
		"bad duration":  {"WIZARD_SESSION_TTL", "soon"},
		"bad bool":      {"WIZARD_STRICT_STEPS", "maybe"},
		"negative cap":  {"WIZARD_MAX_MUTATIONS", "-1"},
		"zero interval": {"WIZARD_SWEEP_INTERVAL", "0s"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "parse env:") {
				t.Fatalf("expected parse env prefix, got %v", err)
			}
		})
	}
}

func TestLoadDotEnvKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=7070\nWIZARD_MAX_MUTATIONS=3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "6060")
	// Registered so the variable is restored after the test.
	t.Setenv("WIZARD_MAX_MUTATIONS", "")
	os.Unsetenv("WIZARD_MAX_MUTATIONS")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "6060" {
		t.Fatalf("existing PORT overridden: %q", cfg.Port)
	}
	if cfg.MaxMutations != 3 {
		t.Fatalf("expected dotenv cap 3, got %d", cfg.MaxMutations)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
	if err == nil || !strings.Contains(err.Error(), "load dotenv:") {
		t.Fatalf("expected load dotenv error, got %v", err)
	}
}
