package constants

const (
	// General Settings
	SettingTimezone                   = "timezone"
	SettingNotificationsEnabled       = "notifications_enabled"
	SettingNotificationGracePeriodMin = "notification_grace_period_min"

	// Generation Settings
	SettingTextModel  = "text_model"
	SettingImageModel = "image_model"
	SettingMediaDir   = "media_dir"

	// Default Settings Values
	DefaultTimezone                   = "Local" // Use system local timezone by default
	DefaultNotificationsEnabled       = true
	DefaultNotificationGracePeriodMin = 10
	DefaultTextModel                  = "gemini-2.5-flash"
	DefaultImageModel                 = "gemini-2.5-flash-image"

	// Default reminder times
	DefaultMorningReminder = "08:00"
	DefaultEveningReminder = "20:00"
)
