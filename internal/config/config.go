package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config carries the API credential for a run.
type Config struct {
	APIToken string
}

// file models the optional config file at Path().
type file struct {
	APIToken string `yaml:"api_token"`
}

// Load resolves the API token. Priority: explicit token (CLI flag or env,
// both bound upstream) over the config file.
func Load(token string) (Config, error) {
	if token != "" {
		return Config{APIToken: token}, nil
	}
	if path := Path(); path != "" {
		cfg, err := FromFile(path)
		if err == nil && cfg.APIToken != "" {
			return cfg, nil
		}
	}
	return Config{}, fmt.Errorf(
		"no API token found; provide --token, set SHORTCUT_API_TOKEN, or add api_token to %s", Path())
}

// FromFile reads a YAML config file.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("invalid config yaml: %w", err)
	}
	return Config{APIToken: f.APIToken}, nil
}

// Path returns the user config file location.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "storyline", "config.yaml")
}
