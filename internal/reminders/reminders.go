// Package reminders keeps the morning and evening affirmation reminders and
// decides when each is due.
package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/manifest/internal/logger"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/utils"
)

const (
	morningMessage = "Good morning. Your affirmation for today is ready."
	eveningMessage = "Time to reflect. Revisit your vision and tonight's affirmation."
)

// Store is the slice of storage.Provider the scheduler needs.
type Store interface {
	GetReminders(ctx context.Context) ([]models.Reminder, error)
	SaveReminders(ctx context.Context, reminders []models.Reminder) error
	MarkReminderSent(ctx context.Context, id string, at time.Time) error
}

// Sender delivers a notification.
type Sender interface {
	Notify(ctx context.Context, text string) error
}

type Scheduler struct {
	store Store
	now   func() time.Time
}

func NewScheduler(store Store, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{store: store, now: now}
}

// ScheduleReminders replaces the stored reminders with one morning and one
// evening reminder at the given times. Existing reminders keep their id and
// last-sent stamp so a reschedule does not fire twice in a day.
func (s *Scheduler) ScheduleReminders(ctx context.Context, times models.ReminderTimes) error {
	for _, t := range []string{times.Morning, times.Evening} {
		if !utils.ValidateTimeFormat(t) {
			return fmt.Errorf("invalid reminder time %q (expected HH:MM)", t)
		}
	}

	existing, err := s.store.GetReminders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reminders: %w", err)
	}
	bySlot := make(map[models.AffirmationType]models.Reminder, len(existing))
	for _, r := range existing {
		bySlot[r.Slot] = r
	}

	now := s.now()
	build := func(slot models.AffirmationType, at, message string) models.Reminder {
		r, ok := bySlot[slot]
		if !ok {
			r = models.Reminder{ID: uuid.New().String(), Slot: slot, CreatedAt: now}
		}
		r.Time = at
		r.Message = message
		r.Active = true
		return r
	}

	next := []models.Reminder{
		build(models.AffirmationMorning, times.Morning, morningMessage),
		build(models.AffirmationEvening, times.Evening, eveningMessage),
	}
	if err := s.store.SaveReminders(ctx, next); err != nil {
		return fmt.Errorf("failed to save reminders: %w", err)
	}
	logger.Info("Reminders scheduled", "morning", times.Morning, "evening", times.Evening)
	return nil
}

// Due returns the reminders that should fire at now.
func (s *Scheduler) Due(ctx context.Context, now time.Time, settings models.Settings) ([]models.Reminder, error) {
	if !settings.NotificationsEnabled {
		return nil, nil
	}
	all, err := s.store.GetReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}

	var due []models.Reminder
	for _, r := range all {
		if r.IsDueAt(now, settings.NotificationGracePeriodMin) {
			due = append(due, r)
		}
	}
	return due, nil
}

func (s *Scheduler) MarkSent(ctx context.Context, id string, at time.Time) error {
	return s.store.MarkReminderSent(ctx, id, at)
}

// Deliver sends every due reminder through sender and stamps the ones that
// were delivered. message may be nil, in which case the reminder's own
// message is sent. It returns how many reminders were delivered.
func (s *Scheduler) Deliver(ctx context.Context, settings models.Settings, sender Sender, message func(models.Reminder) string) (int, error) {
	now := s.now()
	due, err := s.Due(ctx, now, settings)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, r := range due {
		text := r.Message
		if message != nil {
			if m := message(r); m != "" {
				text = m
			}
		}
		if err := sender.Notify(ctx, text); err != nil {
			logger.Warn("Failed to send reminder", "slot", r.Slot, "error", err)
			continue
		}
		if err := s.MarkSent(ctx, r.ID, now); err != nil {
			return sent, fmt.Errorf("failed to mark %s reminder sent: %w", r.Slot, err)
		}
		sent++
	}
	return sent, nil
}
