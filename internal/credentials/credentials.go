// Package credentials keeps the advisory API key in the OS keyring.
package credentials

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when no key is stored.
	ErrNotFound = errors.New("API key not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Get reads the stored key.
func Get() (string, error) {
	key, err := keyring.Get(config.KeyringService, config.KeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return key, nil
}

// Set stores key, trimmed of surrounding whitespace.
func Set(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New(config.ErrKeyEmpty)
	}
	if err := keyring.Set(config.KeyringService, config.KeyringUser, key); err != nil {
		return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

// Delete removes the stored key.
func Delete() error {
	err := keyring.Delete(config.KeyringService, config.KeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

// Resolve returns the configured key when set, else the keyring entry.
// An absent or unreachable keyring yields "" so the caller can fall back
// to the built-in advice tables.
func Resolve(configured string) string {
	if k := strings.TrimSpace(configured); k != "" {
		return k
	}

	key, err := Get()
	switch {
	case err == nil:
		return key
	case errors.Is(err, ErrNotFound):
		slog.Debug(config.MsgKeyMissing, config.LogKeyComponent, config.CompKeyring)
	default:
		slog.Warn(config.MsgKeyMissing,
			config.LogKeyComponent, config.CompKeyring,
			config.LogKeyError, err,
		)
	}
	return ""
}
