// Package keyring keeps PostgreSQL connection strings in the OS credential
// store so they never appear in shell history or the config file.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/Ebi50/training28-sub000/internal/constants"
)

var (
	// ErrNotFound is returned when no connection string is stored for a profile
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	ErrEmptyConnection    = errors.New("connection string cannot be empty")
)

// Status describes what the keyring holds for one profile.
type Status struct {
	Profile   string
	Available bool
	Stored    bool
}

// account maps a profile name to the keyring user. The default profile keeps
// the bare account name.
func account(profile string) string {
	profile = strings.TrimSpace(profile)
	if profile == "" || profile == constants.DefaultAthleteID {
		return constants.DefaultKeyringUser
	}
	return constants.DefaultKeyringUser + ":" + profile
}

// Get returns the connection string stored for profile.
func Get(profile string) (string, error) {
	connStr, err := keyring.Get(constants.AppName, account(profile))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// Set stores connStr for profile, replacing any previous value.
func Set(profile, connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return ErrEmptyConnection
	}
	if err := keyring.Set(constants.AppName, account(profile), connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes the connection string for profile.
func Delete(profile string) error {
	if err := keyring.Delete(constants.AppName, account(profile)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Inspect reports whether the keyring is reachable and holds a value for
// profile. It never returns the secret itself.
func Inspect(profile string) Status {
	st := Status{Profile: profile}
	if st.Profile == "" {
		st.Profile = constants.DefaultAthleteID
	}
	_, err := Get(profile)
	switch {
	case err == nil:
		st.Available, st.Stored = true, true
	case errors.Is(err, ErrNotFound):
		st.Available = true
	}
	return st
}
