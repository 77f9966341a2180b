// Package secret stores the SRT publish passphrase in the OS keyring.
// The STRMCTL_PASSPHRASE environment variable overrides the keyring,
// which keeps headless and CI machines working without one.
package secret

import (
	"errors"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	service = "strmctl"
	envVar  = "STRMCTL_PASSPHRASE"
)

// ErrNotFound is returned when no passphrase is stored for a session.
var ErrNotFound = errors.New("no passphrase stored")

// PublishPassphrase returns the SRT publish passphrase for a session.
func PublishPassphrase(sessionName string) (string, error) {
	if v := os.Getenv(envVar); v != "" {
		return v, nil
	}
	v, err := keyring.Get(service, sessionName)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// SetPublishPassphrase stores the passphrase for a session.
func SetPublishPassphrase(sessionName, passphrase string) error {
	return keyring.Set(service, sessionName, passphrase)
}

// DeletePublishPassphrase removes the stored passphrase. Missing
// entries are not an error.
func DeletePublishPassphrase(sessionName string) error {
	err := keyring.Delete(service, sessionName)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
