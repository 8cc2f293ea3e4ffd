// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build darwin

package keychain

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"querysmith/cli/internal/logging"
)

func debugf(format string, args ...any) {
	logging.Debugf("keychain", format, args...)
}

// securityBackend implements keychain operations using the macOS security
// command directly, which keeps working on systems where the Keychain API
// used by the keyring library is unavailable.
type securityBackend struct{}

func newSecurityBackend() (*securityBackend, error) {
	if _, err := exec.LookPath("security"); err != nil {
		return nil, fmt.Errorf("security command not found: %w", err)
	}
	return &securityBackend{}, nil
}

// runSecurity executes one security subcommand and captures both streams.
func runSecurity(args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command("security", args...)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return out.String(), errBuf.String(), err
}

// Set stores a key-value pair in the macOS keychain. Debug output reports
// only the value length; secret contents are never echoed.
func (s *securityBackend) Set(key, value string) error {
	debugf("Set() called for key '%s', value length: %d", key, len(value))

	// Replace any existing entry
	_ = s.Delete(key)

	_, stderr, err := runSecurity("add-generic-password",
		"-a", ServiceName,
		"-s", key,
		"-w", value,
		"-U",
	)
	if err != nil {
		err = fmt.Errorf("failed to store '%s' in keychain: %s: %w", key, stderr, err)
		debugf("Set() failed: %v", err)
		return err
	}

	debugf("Set() succeeded for key '%s'", key)
	return nil
}

// Get retrieves a value from the macOS keychain.
func (s *securityBackend) Get(key string) (string, error) {
	debugf("Get() called for key '%s'", key)

	stdout, stderr, err := runSecurity("find-generic-password",
		"-a", ServiceName,
		"-s", key,
		"-w",
	)
	if err != nil {
		if strings.Contains(stderr, "could not be found") {
			debugf("Get() key not found: '%s'", key)
			return "", fmt.Errorf("key not found")
		}
		err = fmt.Errorf("failed to retrieve from keychain: %s: %w", stderr, err)
		debugf("Get() failed: %v", err)
		return "", err
	}

	result := strings.TrimSpace(stdout)
	debugf("Get() returned %d bytes for key '%s'", len(result), key)
	return result, nil
}

// Delete removes a key from the macOS keychain. Missing keys are not errors.
func (s *securityBackend) Delete(key string) error {
	_, stderr, err := runSecurity("delete-generic-password",
		"-a", ServiceName,
		"-s", key,
	)
	if err != nil {
		if strings.Contains(stderr, "could not be found") {
			return nil
		}
		return fmt.Errorf("failed to delete from keychain: %s: %w", stderr, err)
	}
	return nil
}
