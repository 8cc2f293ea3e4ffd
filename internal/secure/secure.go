// Package secure provides package-level helpers over the centralized keychain
// manager from internal/keychain, so callers don't repeat the manager
// initialization dance for one-shot reads and writes.
package secure

import (
	"querysmith/cli/internal/keychain"
)

// SaveDBDSN stores the database DSN in the keychain.
func SaveDBDSN(dsn string) error {
	manager, err := keychain.GetManager()
	if err != nil {
		return err
	}
	return manager.SaveDBDSN(dsn)
}

// LoadDBDSN retrieves the database DSN from the keychain.
func LoadDBDSN() (string, error) {
	manager, err := keychain.GetManager()
	if err != nil {
		return "", err
	}
	return manager.LoadDBDSN()
}

// ClearDB removes DB-related secrets from the keychain.
func ClearDB() error {
	manager, err := keychain.GetManager()
	if err != nil {
		return err
	}
	return manager.ClearDB()
}

// SaveAPIKey stores the generation-service API key in the keychain.
func SaveAPIKey(key string) error {
	manager, err := keychain.GetManager()
	if err != nil {
		return err
	}
	return manager.SaveAPIKey(key)
}

// LoadAPIKey retrieves the generation-service API key from the keychain.
func LoadAPIKey() (string, error) {
	manager, err := keychain.GetManager()
	if err != nil {
		return "", err
	}
	return manager.LoadAPIKey()
}

// ClearAPIKey removes the stored API key from the keychain.
func ClearAPIKey() error {
	manager, err := keychain.GetManager()
	if err != nil {
		return err
	}
	return manager.ClearAPIKey()
}

// ClearAll removes every secret this CLI owns.
func ClearAll() error {
	manager, err := keychain.GetManager()
	if err != nil {
		return err
	}
	return manager.ClearAll()
}
