package profile

import (
	"fmt"
	"strings"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/validation"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Open()
	if err != nil {
		return err
	}
	p := s.Profile()
	if p.Name == "" {
		fmt.Println("No profile yet. Run 'manifest onboard' to get started.")
		return nil
	}

	fmt.Println(cli.TitleStyle.Render(p.Name))
	fmt.Printf("  Photo:      %s\n", valueOr(p.PhotoRef, "(none)"))
	fmt.Printf("  Onboarded:  %v\n", p.IsOnboarded)
	if p.ScheduleSet {
		fmt.Printf("  Reminders:  %s / %s\n", p.ReminderTimes.Morning, p.ReminderTimes.Evening)
	} else {
		fmt.Println("  Reminders:  not scheduled")
	}
	fmt.Printf("  Streak:     %d day(s)\n", p.AffirmationStreak)
	if p.LastAcknowledged != nil {
		fmt.Printf("  Last ack:   %s\n", p.LastAcknowledged.Format(constants.DateFormat+" "+constants.TimeFormat))
	}
	fmt.Printf("  Goals:      %d\n", len(s.Goals()))
	fmt.Printf("  Screen:     %s\n", s.Screen())
	return nil
}

// SetCmd edits individual profile fields.
type SetCmd struct {
	Name    *string `help:"New display name."`
	Photo   *string `help:"Path to a new photo." type:"path"`
	Morning *string `help:"Morning reminder time (HH:MM)."`
	Evening *string `help:"Evening reminder time (HH:MM)."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	return ctx.Update(func(s *cli.Session) error {
		current := s.Profile()
		patch := models.UserPatch{}

		if c.Name != nil {
			if err := validation.ValidateName(*c.Name); err != nil {
				return err
			}
			name := strings.TrimSpace(*c.Name)
			patch.Name = &name
		}
		if c.Photo != nil {
			photo, err := ResolvePhoto(*c.Photo)
			if err != nil {
				return err
			}
			patch.PhotoRef = &photo
		}
		if c.Morning != nil || c.Evening != nil {
			times := current.ReminderTimes
			if times.Morning == "" {
				times.Morning = constants.DefaultMorningReminder
			}
			if times.Evening == "" {
				times.Evening = constants.DefaultEveningReminder
			}
			if c.Morning != nil {
				times.Morning = *c.Morning
			}
			if c.Evening != nil {
				times.Evening = *c.Evening
			}
			if err := validation.ValidateReminderTimes(times); err != nil {
				return err
			}
			patch.ReminderTimes = &times
		}

		if patch.Empty() {
			fmt.Println("No changes specified. Use flags such as --name or --morning to update your profile.")
			return nil
		}
		s.UpdateUser(ctx.Context(), patch)
		fmt.Println("Profile updated successfully.")
		return nil
	})
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
