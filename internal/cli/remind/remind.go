package remind

import (
	"fmt"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/notifier"
	"github.com/julianstephens/manifest/internal/reminders"
	"github.com/julianstephens/manifest/internal/validation"
)

// ScheduleCmd sets the two daily reminder times.
type ScheduleCmd struct {
	Morning string `help:"Morning reminder time (HH:MM), default 08:00."`
	Evening string `help:"Evening reminder time (HH:MM), default 20:00."`
}

func (c *ScheduleCmd) Run(ctx *cli.Context) error {
	times := models.ReminderTimes{Morning: c.Morning, Evening: c.Evening}
	if times.Morning == "" {
		times.Morning = constants.DefaultMorningReminder
	}
	if times.Evening == "" {
		times.Evening = constants.DefaultEveningReminder
	}
	if err := validation.ValidateReminderTimes(times); err != nil {
		return err
	}
	return ctx.Update(func(s *cli.Session) error {
		s.UpdateUser(ctx.Context(), models.UserPatch{ReminderTimes: &times})
		fmt.Printf("✓ Reminders set for %s and %s\n", times.Morning, times.Evening)
		return nil
	})
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Store.GetReminders(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}
	if len(list) == 0 {
		fmt.Println("No reminders scheduled. Run 'manifest remind schedule'.")
		return nil
	}
	for _, r := range list {
		sent := "never"
		if r.LastSent != nil {
			sent = r.LastSent.Format(constants.DateFormat + " " + constants.TimeFormat)
		}
		fmt.Printf("  %s  %-8s %s %s\n", r.Time, r.Slot, r.Message, cli.SubtleStyle.Render("(last sent "+sent+")"))
	}
	return nil
}

// NotifyCmd delivers any reminder that is due now. It is meant to be run
// periodically, e.g. from cron or the tray companion.
type NotifyCmd struct {
	DryRun bool `help:"Show due reminders without sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	return ctx.Update(func(s *cli.Session) error {
		now := ctx.Clock(s.Settings)()
		if c.DryRun {
			due, err := s.Scheduler.Due(ctx.Context(), now, s.Settings)
			if err != nil {
				return err
			}
			if len(due) == 0 {
				fmt.Println("No reminders due.")
			}
			for _, r := range due {
				fmt.Printf("Would send %s reminder: %s\n", r.Slot, r.Message)
			}
			return nil
		}

		var sender reminders.Sender = ctx.Sender
		if sender == nil {
			sender = notifier.New()
		}
		sent, err := s.Scheduler.Deliver(ctx.Context(), s.Settings, sender, func(r models.Reminder) string {
			slot := r.Slot
			s.RefreshAffirmation(ctx.Context(), &slot)
			return s.Affirmation().Text
		})
		if err != nil {
			return err
		}
		fmt.Printf("Sent %d reminder(s).\n", sent)
		return nil
	})
}
