package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/keyring"
)

// KeyringSetCmd stores the Gemini API key in the OS keyring.
type KeyringSetCmd struct {
	APIKey string `arg:"" optional:"" help:"Gemini API key. Prompted for when omitted."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	key := cmd.APIKey
	if key == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Gemini API key").
				EchoMode(huh.EchoModePassword).
				Value(&key),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}
	}

	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}
	fmt.Println("✓ API key stored in OS keyring")
	return nil
}

// KeyringGetCmd shows the stored API key, masked.
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	key, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring. Use 'manifest keyring set' to store one")
		}
		return fmt.Errorf("failed to retrieve API key from keyring: %w", err)
	}
	fmt.Println(keyring.Mask(key))
	return nil
}

// KeyringDeleteCmd removes the API key from the OS keyring.
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return err
	}
	fmt.Println("✓ API key deleted from OS keyring")
	return nil
}
