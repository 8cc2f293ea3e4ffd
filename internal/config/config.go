// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings live here; credentials go to the OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"querysmith/cli/internal/xdg"
)

// DefaultGenServiceURL is the generation service used when none is configured.
const DefaultGenServiceURL = "https://api.querysmith.dev"

// Config holds non-sensitive CLI settings.
type Config struct {
	GenServiceURL string `json:"gen_service_url"`
}

func configPath() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration. A missing file is not an error; defaults
// apply, as they do for fields the file leaves empty.
func Load() (Config, error) {
	var c Config
	p, err := configPath()
	if err != nil {
		return c, err
	}

	data, err := os.ReadFile(p)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// first run
	case err != nil:
		return c, err
	default:
		if err := json.Unmarshal(data, &c); err != nil {
			return c, err
		}
	}

	if c.GenServiceURL == "" {
		c.GenServiceURL = DefaultGenServiceURL
	}
	return c, nil
}

// Save writes the configuration with 0600 permissions.
func Save(c Config) error {
	p, err := configPath()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
