package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Ebi50/training28-sub000/internal/cli"
	"github.com/Ebi50/training28-sub000/internal/keyring"
	"github.com/Ebi50/training28-sub000/internal/storage/postgres"
)

// KeyringSetCmd stores a PostgreSQL connection string in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
	Profile          string `help:"Keyring profile name." default:"default"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(cmd.ConnectionString) && !strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		fmt.Println("Note: the connection string embeds a password; it is stored encrypted in the OS keyring.")
	}

	if err := keyring.Set(cmd.Profile, cmd.ConnectionString); err != nil {
		return err
	}

	fmt.Printf("✓ Connection string for profile %q stored in OS keyring: %s\n", cmd.Profile, maskPassword(cmd.ConnectionString))
	fmt.Println("  Use it with: training28 --db keyring <command>")
	return nil
}

// KeyringDeleteCmd removes a stored connection string
type KeyringDeleteCmd struct {
	Profile string `help:"Keyring profile name." default:"default"`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.Delete(cmd.Profile); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no connection string stored for profile %q", cmd.Profile)
		}
		return err
	}
	fmt.Printf("✓ Connection string for profile %q deleted from OS keyring\n", cmd.Profile)
	return nil
}

// KeyringStatusCmd reports keyring availability without revealing the secret
type KeyringStatusCmd struct {
	Profile string `help:"Keyring profile name." default:"default"`
}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	st := keyring.Inspect(cmd.Profile)
	if !st.Available {
		fmt.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	fmt.Println("✓ OS keyring is available")
	if st.Stored {
		fmt.Printf("✓ Connection string stored for profile %q\n", st.Profile)
	} else {
		fmt.Printf("ℹ No connection string stored for profile %q\n", st.Profile)
	}
	return nil
}

// maskPassword hides the password of a URL or key=value connection string.
func maskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			remaining := connStr[idx+3:]
			if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
				userInfo := remaining[:atIdx]
				if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
					return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
				}
			}
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(part, "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}
