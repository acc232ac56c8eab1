package constants

import "time"

const (
	AppName           = "manifest"
	DefaultConfigPath = "~/.config/manifest/manifest.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// GeneralRitualBucket is the goal id rituals attach to when no goal exists yet.
	GeneralRitualBucket = "general-tasks"

	// FallbackAffirmation is shown when the text generator is unavailable.
	FallbackAffirmation = "I am becoming the person I envision, one aligned action at a time."

	// Keyring
	DefaultKeyringUser = "gemini-api-key"
	APIKeyEnvVar       = "GEMINI_API_KEY"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "manifest-notifier.lock"
	NotificationDurationMs = 6000
	TrayAppIdentifier      = "com.julianstephens.manifest"
	TrayAppExecutable      = "manifest-tray"

	// Media
	MediaDirName = "media"
)

// Categories are the life areas a vision goal can be tagged with.
var Categories = []string{
	"Career",
	"Finance",
	"Health",
	"Relationships",
	"Personal Growth",
	"Travel",
	"Home",
	"Spirituality",
}
