package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"storyline/internal/config"
)

func TestLoadExplicitTokenWins(t *testing.T) {
	cfg, err := config.Load("tok-from-flag")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIToken != "tok-from-flag" {
		t.Fatalf("got %q", cfg.APIToken)
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_token: tok-from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if cfg.APIToken != "tok-from-file" {
		t.Fatalf("got %q", cfg.APIToken)
	}
}

func TestFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_token: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.FromFile(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestLoadMissingToken(t *testing.T) {
	// Point the user config dir somewhere empty so no real config leaks in.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, err := config.Load(""); err == nil {
		t.Fatal("expected error when no token is available")
	}
}
