// Package storage defines the persistence contract for manifest state,
// settings and reminders.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/julianstephens/manifest/internal/models"
)

var (
	// ErrNotInitialized is returned when a store is used before Init or Load.
	ErrNotInitialized = errors.New("storage not initialized, run 'manifest init' first")
	// ErrNotFound is returned when a keyed record does not exist.
	ErrNotFound = errors.New("record not found")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	// Migrate applies pending schema migrations and returns how many ran.
	Migrate(ctx context.Context, logFn func(string)) (int, error)

	// State
	LoadState(ctx context.Context) (models.State, error)
	// SaveState replaces the stored state with st in a single transaction.
	SaveState(ctx context.Context, st models.State) error

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error

	// Reminders
	GetReminders(ctx context.Context) ([]models.Reminder, error)
	SaveReminders(ctx context.Context, reminders []models.Reminder) error
	MarkReminderSent(ctx context.Context, id string, at time.Time) error

	// Utils
	GetConfigPath() string
}
