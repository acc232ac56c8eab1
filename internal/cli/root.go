// Package cli holds the shared context and helpers for manifest commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/manifest/internal/generator"
	"github.com/julianstephens/manifest/internal/keyring"
	"github.com/julianstephens/manifest/internal/logger"
	"github.com/julianstephens/manifest/internal/manifest"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/reminders"
	"github.com/julianstephens/manifest/internal/storage"
	"github.com/julianstephens/manifest/internal/utils"
)

type Context struct {
	Ctx   context.Context
	Store storage.Provider

	// Generator overrides the generator built from settings and the API key.
	Generator generator.Generator
	// Sender delivers reminder notifications.
	Sender reminders.Sender
	// Now overrides the clock derived from the timezone setting.
	Now func() time.Time
}

// Context returns the command's context.Context.
func (c *Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Clock returns the clock commands should use for settings.
func (c *Context) Clock(settings models.Settings) func() time.Time {
	if c.Now != nil {
		return c.Now
	}
	return utils.ClockFor(settings.Timezone)
}

// Session is a loaded manifest store plus what it was built from.
type Session struct {
	*manifest.Store
	Settings  models.Settings
	Scheduler *reminders.Scheduler
}

// Open loads settings and state and builds a manifest store wired to the
// generator, reminder scheduler and clock. Rituals completed on an earlier
// day are reset.
func (c *Context) Open() (*Session, error) {
	ctx := c.Context()

	settings, err := c.Store.GetSettings(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to get settings: %w", err)
		}
		settings = models.DefaultSettings()
	}
	state, err := c.Store.LoadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	clock := c.Clock(settings)
	gen := c.Generator
	if gen == nil {
		apiKey, err := keyring.ResolveAPIKey()
		if err != nil {
			logger.Warn("Could not read API key from keyring", "error", err)
		}
		gen = generator.New(ctx, generator.Config{
			APIKey:     apiKey,
			TextModel:  settings.TextModel,
			ImageModel: settings.ImageModel,
			MediaDir:   settings.MediaDir,
		})
	}
	scheduler := reminders.NewScheduler(c.Store, clock)

	store := manifest.New(state,
		manifest.WithClock(clock),
		manifest.WithAffirmationGenerator(gen),
		manifest.WithImageGenerator(gen),
		manifest.WithLifestyleSimulator(gen),
		manifest.WithReminderScheduler(scheduler),
	)
	if store.RolloverIfNewDay() {
		logger.Info("New day, rituals reset")
	}

	return &Session{Store: store, Settings: settings, Scheduler: scheduler}, nil
}

// Save persists the session's current state.
func (c *Context) Save(s *Session) error {
	if err := c.Store.SaveState(c.Context(), s.Snapshot()); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Update opens a session, runs fn and saves the result if fn succeeds.
func (c *Context) Update(fn func(s *Session) error) error {
	s, err := c.Open()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return c.Save(s)
}

// ResolveID finds the single id in ids that equals or starts with prefix.
func ResolveID(ids []string, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.New("id cannot be empty")
	}
	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no item matches id %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

// ShortID returns the first eight characters of an id for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func GoalIDs(goals []models.VisionGoal) []string {
	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	return ids
}

func RitualIDs(rituals []models.DailyRitual) []string {
	ids := make([]string, len(rituals))
	for i, r := range rituals {
		ids[i] = r.ID
	}
	return ids
}
