package models

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/utils"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingNotificationGracePeriodMin:
			if _, err := fmt.Sscanf(value, "%d", &settings.NotificationGracePeriodMin); err != nil {
				return Settings{}, fmt.Errorf("parsing notification_grace_period_min: %w", err)
			}
		case constants.SettingTextModel:
			settings.TextModel = value
		case constants.SettingImageModel:
			settings.ImageModel = value
		case constants.SettingMediaDir:
			settings.MediaDir = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:                   settings.Timezone,
		constants.SettingNotificationsEnabled:       fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingNotificationGracePeriodMin: fmt.Sprintf("%d", settings.NotificationGracePeriodMin),
		constants.SettingTextModel:                  settings.TextModel,
		constants.SettingImageModel:                 settings.ImageModel,
		constants.SettingMediaDir:                   settings.MediaDir,
	}
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	s := Settings{NotificationsEnabled: constants.DefaultNotificationsEnabled}
	ApplyDefaultSettings(&s)
	return s
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.NotificationGracePeriodMin == 0 {
		settings.NotificationGracePeriodMin = constants.DefaultNotificationGracePeriodMin
	}
	if settings.TextModel == "" {
		settings.TextModel = constants.DefaultTextModel
	}
	if settings.ImageModel == "" {
		settings.ImageModel = constants.DefaultImageModel
	}
	if settings.MediaDir == "" {
		settings.MediaDir = DefaultMediaDir()
	}
}

// DefaultMediaDir is the media directory beside the default database path.
func DefaultMediaDir() string {
	dir, err := utils.ExpandHome(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		dir = filepath.Join(os.TempDir(), constants.AppName)
	}
	return filepath.Join(dir, constants.MediaDirName)
}
