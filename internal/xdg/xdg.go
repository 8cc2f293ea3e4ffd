// Package xdg resolves XDG Base Directory paths for querysmith. When the
// XDG environment variables are unset it falls back to the traditional
// dotfile locations under the home directory.
package xdg

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the querysmith config directory, creating it with
// private permissions when missing. XDG_CONFIG_HOME is honored; the
// fallback is ~/.config/querysmith.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, "querysmith")
	return dir, os.MkdirAll(dir, 0o700)
}
