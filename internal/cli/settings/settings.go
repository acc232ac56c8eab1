package settings

import (
	"errors"
	"fmt"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/storage"
	"github.com/julianstephens/manifest/internal/validation"
)

func load(ctx *cli.Context) (models.Settings, error) {
	settings, err := ctx.Store.GetSettings(ctx.Context())
	if errors.Is(err, storage.ErrNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func save(ctx *cli.Context, settings models.Settings) error {
	models.ApplyDefaultSettings(&settings)
	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(ctx.Context(), settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	settings, err := load(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Current Settings:")
	fmt.Printf("  Timezone:              %s\n", settings.Timezone)
	fmt.Printf("  Text Model:            %s\n", settings.TextModel)
	fmt.Printf("  Image Model:           %s\n", settings.ImageModel)
	fmt.Printf("  Media Dir:             %s\n", settings.MediaDir)
	fmt.Println("\nNotification Settings:")
	fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
	fmt.Printf("  Grace Period:          %d min\n", settings.NotificationGracePeriodMin)
	return nil
}

type SetCmd struct {
	Timezone             *string `help:"IANA timezone name, or Local."`
	NotificationsEnabled *bool   `help:"Enable or disable reminder notifications."`
	GracePeriodMin       *int    `help:"Minutes a missed reminder may still fire."`
	TextModel            *string `help:"Model used for affirmations."`
	ImageModel           *string `help:"Model used for goal and lifestyle images."`
	MediaDir             *string `help:"Directory for generated images." type:"path"`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	settings, err := load(ctx)
	if err != nil {
		return err
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.GracePeriodMin != nil {
		settings.NotificationGracePeriodMin = *c.GracePeriodMin
		updated = true
	}
	if c.TextModel != nil {
		settings.TextModel = *c.TextModel
		updated = true
	}
	if c.ImageModel != nil {
		settings.ImageModel = *c.ImageModel
		updated = true
	}
	if c.MediaDir != nil {
		settings.MediaDir = *c.MediaDir
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use 'manifest settings show' to view settings or flags to update them.")
		return nil
	}
	if err := save(ctx, settings); err != nil {
		return err
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
