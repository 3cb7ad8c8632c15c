package crypto

import (
	"errors"
	"fmt"
)

// Keyring stores the database encryption key
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "dewakost"
	KeyName     = "db-encryption-key"

	// EnvKey holds the key on platforms without a keychain
	EnvKey = "DEWAKOST_DB_KEY"
)

// NewKeyring returns the best available keyring implementation
func NewKeyring() Keyring {
	return newPlatformKeyring()
}

// ResolveKey returns the stored key, or asks for one with prompt and tries to
// remember it. A key that cannot be stored is still returned so this run can
// open the database.
func ResolveKey(k Keyring, prompt func() (string, error)) (string, error) {
	if key, err := k.GetKey(); err == nil {
		return key, nil
	}
	if prompt == nil {
		return "", fmt.Errorf("database is encrypted and no key is stored (set %s)", EnvKey)
	}

	key, err := prompt()
	if err != nil {
		return "", fmt.Errorf("failed to read encryption key: %w", err)
	}
	if key == "" {
		return "", errors.New("encryption key cannot be empty")
	}

	_ = k.SetKey(key)
	return key, nil
}
