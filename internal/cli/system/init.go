package system

import (
	"fmt"
	"os"

	"github.com/Ebi50/training28-sub000/internal/cli"
	"github.com/Ebi50/training28-sub000/internal/storage/sqlite"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, ok := ctx.Store.(*sqlite.Store); !ok {
			return fmt.Errorf("--force is only supported for SQLite storage")
		}
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized training28 storage at: %s\n", ctx.Store.GetConfigPath())

	if ctx.ConfigPath == "" {
		return nil
	}
	path, err := utils.ExpandPath(ctx.ConfigPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := ctx.Config.Save(path); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
		fmt.Printf("Wrote default config to: %s\n", path)
	}
	return nil
}
