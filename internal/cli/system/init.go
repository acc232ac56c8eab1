package system

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Delete the existing SQLite database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}

	state, err := ctx.Store.LoadState(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	if state.Profile.ID == "" {
		state.Profile.ID = uuid.New().String()
		if err := ctx.Store.SaveState(ctx.Context(), state); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
	}

	fmt.Printf("Initialized manifest storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Next: run 'manifest onboard' to set up your profile.")
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	if postgres.IsConnString(path) || path == "postgresql" {
		return fmt.Errorf("--force is only supported for SQLite databases")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	fmt.Printf("Deleted existing database at: %s\n", path)
	return nil
}
