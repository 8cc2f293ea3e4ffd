// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for
// querysmith. It manages all interactions with the OS credential store and
// holds the two secrets the CLI keeps: the database DSN of the active
// connection profile and the generation-service API key.
//
// Supported stores are the macOS Keychain and the Windows Credential Manager.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// ServiceName is the namespace under which secrets are filed in the OS store.
const ServiceName = "querysmith"

const (
	keyDSN    = "database_dsn"
	keyAPIKey = "generation_api_key"
)

// nativeStore is satisfied by platform backends that talk to the credential
// store directly, bypassing the keyring library (the `security` tool on
// macOS). Preferred when available.
type nativeStore interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// Manager serializes access to the OS credential store. Exactly one of ring
// or native is set.
type Manager struct {
	mu     sync.RWMutex
	ring   keyring.Keyring
	native nativeStore
}

var (
	sharedMu  sync.Mutex
	shared    *Manager
	sharedErr error
)

// GetManager returns the process-wide manager, creating it on first use.
// After a failed initialization the next call tries again.
func GetManager() (*Manager, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		shared, sharedErr = NewManager()
	}
	return shared, sharedErr
}

// NewManager opens a credential store for this platform.
func NewManager() (*Manager, error) {
	if runtime.GOOS == "darwin" {
		if native, err := newSecurityBackend(); err == nil {
			return &Manager{native: native}, nil
		}
		// security command unavailable; the keyring library is next
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// openRing opens the OS keyring. Only native platform stores are allowed;
// there is no file fallback, secrets never touch disk in plain form.
func openRing() (keyring.Keyring, error) {
	cfg := keyring.Config{ServiceName: ServiceName, PassPrefix: ServiceName}

	switch runtime.GOOS {
	case "darwin":
		// Keychain first; pass covers machines where the Keychain API is
		// locked down (requires `brew install pass`).
		cfg.AllowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		cfg.AllowedBackends = []keyring.BackendType{keyring.WinCredBackend}
		cfg.WinCredPrefix = ServiceName
	default:
		return nil, errors.New("secure storage not supported on this OS (macOS/Windows only)")
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. On macOS 26.0+, install 'pass': brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, err
	}
	return ring, nil
}

// SaveDBDSN stores the normalized DSN of the active connection.
func (m *Manager) SaveDBDSN(dsn string) error {
	return m.put(keyDSN, dsn)
}

// LoadDBDSN returns the stored connection DSN.
func (m *Manager) LoadDBDSN() (string, error) {
	return m.fetch(keyDSN)
}

// ClearDB forgets the stored connection DSN.
func (m *Manager) ClearDB() error {
	m.drop(keyDSN)
	return nil
}

// SaveAPIKey stores the generation-service API key.
func (m *Manager) SaveAPIKey(key string) error {
	return m.put(keyAPIKey, key)
}

// LoadAPIKey returns the stored generation-service API key.
func (m *Manager) LoadAPIKey() (string, error) {
	return m.fetch(keyAPIKey)
}

// ClearAPIKey forgets the stored API key.
func (m *Manager) ClearAPIKey() error {
	m.drop(keyAPIKey)
	return nil
}

// ClearAll forgets every secret this CLI owns.
func (m *Manager) ClearAll() error {
	m.drop(keyDSN, keyAPIKey)
	return nil
}

func (m *Manager) put(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.native != nil {
		return m.native.Set(key, value)
	}
	return m.ring.Set(keyring.Item{Key: key, Data: []byte(value)})
}

func (m *Manager) fetch(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.native != nil {
		return m.native.Get(key)
	}
	it, err := m.ring.Get(key)
	if err != nil {
		return "", err
	}
	return string(it.Data), nil
}

// drop deletes keys, ignoring not-found.
func (m *Manager) drop(keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		if m.native != nil {
			_ = m.native.Delete(key)
		} else {
			_ = m.ring.Remove(key)
		}
	}
}
