package manifest

import (
	"context"

	"github.com/julianstephens/manifest/internal/logger"
	"github.com/julianstephens/manifest/internal/models"
)

// UpdateUser merges patch into the profile.
//
// Completing onboarding with both a name and a photo moves the session to the
// goal wizard. Saving reminder times marks the schedule as set and hands the
// times to the reminder scheduler; a scheduler failure is logged only.
func (s *Store) UpdateUser(ctx context.Context, patch models.UserPatch) {
	if patch.Empty() {
		return
	}

	var schedule *models.ReminderTimes
	s.update(func(st *models.State) {
		prev := st.Profile
		next := patch.Apply(prev)
		if patch.ReminderTimes != nil {
			next.ScheduleSet = true
			times := next.ReminderTimes
			schedule = &times
		}
		st.Profile = next

		if !prev.IsOnboarded && next.IsOnboarded && next.Name != "" && next.PhotoRef != "" {
			st.Screen = models.ScreenWizard
		}
	})

	if schedule == nil {
		return
	}
	if s.reminders == nil {
		logger.Debug("No reminder scheduler configured, skipping reminders")
		return
	}
	if err := s.reminders.ScheduleReminders(ctx, *schedule); err != nil {
		logger.Warn("Failed to schedule reminders", "morning", schedule.Morning, "evening", schedule.Evening, "error", err)
	}
}
