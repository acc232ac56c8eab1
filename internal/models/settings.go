package models

// Settings represents application-wide settings
type Settings struct {
	Timezone                   string `json:"timezone" yaml:"timezone"`                                           // IANA timezone name or "Local"
	NotificationsEnabled       bool   `json:"notifications_enabled" yaml:"notifications_enabled"`                 // whether reminders are delivered
	NotificationGracePeriodMin int    `json:"notification_grace_period_min" yaml:"notification_grace_period_min"` // how late a reminder may still fire
	TextModel                  string `json:"text_model" yaml:"text_model"`                                       // model used for affirmations
	ImageModel                 string `json:"image_model" yaml:"image_model"`                                     // model used for goal and lifestyle images
	MediaDir                   string `json:"media_dir" yaml:"media_dir"`                                         // where generated images are written
}
