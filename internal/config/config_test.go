// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import (
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.GenServiceURL != DefaultGenServiceURL {
		t.Errorf("GenServiceURL = %q, want default %q", c.GenServiceURL, DefaultGenServiceURL)
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	want := Config{GenServiceURL: "https://gen.internal:8443"}
	if err := Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.GenServiceURL != want.GenServiceURL {
		t.Errorf("GenServiceURL = %q, want %q", got.GenServiceURL, want.GenServiceURL)
	}
}

func TestLoadFillsEmptyFields(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := Save(Config{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.GenServiceURL != DefaultGenServiceURL {
		t.Errorf("empty field should default: got %q", c.GenServiceURL)
	}
}
