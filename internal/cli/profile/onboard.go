package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/utils"
	"github.com/julianstephens/manifest/internal/validation"
)

// OnboardCmd collects the profile and reminder schedule. Missing values are
// asked for interactively.
type OnboardCmd struct {
	Name    string `help:"Your name."`
	Photo   string `help:"Path to a photo of you, used to personalize images." type:"path"`
	Morning string `help:"Morning reminder time (HH:MM)."`
	Evening string `help:"Evening reminder time (HH:MM)."`
}

func (c *OnboardCmd) Run(ctx *cli.Context) error {
	if c.Name == "" || c.Photo == "" {
		if err := c.prompt(); err != nil {
			return err
		}
	}
	if c.Morning == "" {
		c.Morning = constants.DefaultMorningReminder
	}
	if c.Evening == "" {
		c.Evening = constants.DefaultEveningReminder
	}

	if err := validation.ValidateName(c.Name); err != nil {
		return err
	}
	photo, err := ResolvePhoto(c.Photo)
	if err != nil {
		return err
	}
	times := models.ReminderTimes{Morning: c.Morning, Evening: c.Evening}
	if err := validation.ValidateReminderTimes(times); err != nil {
		return err
	}

	return ctx.Update(func(s *cli.Session) error {
		name := strings.TrimSpace(c.Name)
		onboarded := true
		s.UpdateUser(ctx.Context(), models.UserPatch{
			Name:          &name,
			PhotoRef:      &photo,
			IsOnboarded:   &onboarded,
			ReminderTimes: &times,
		})

		fmt.Printf("Welcome, %s.\n", cli.TitleStyle.Render(name))
		fmt.Printf("Reminders set for %s and %s.\n", times.Morning, times.Evening)
		if s.Screen() == models.ScreenWizard {
			fmt.Println("Next: run 'manifest goal add' to create your first vision goal.")
		}
		return nil
	})
}

func (c *OnboardCmd) prompt() error {
	if c.Morning == "" {
		c.Morning = constants.DefaultMorningReminder
	}
	if c.Evening == "" {
		c.Evening = constants.DefaultEveningReminder
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What should we call you?").
				Value(&c.Name).
				Validate(validation.ValidateName),
			huh.NewInput().
				Title("Path to a photo of you").
				Description("Used to place you inside your vision images.").
				Value(&c.Photo).
				Validate(func(s string) error {
					_, err := ResolvePhoto(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewInput().Title("Morning reminder (HH:MM)").Value(&c.Morning),
			huh.NewInput().Title("Evening reminder (HH:MM)").Value(&c.Evening),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}
	return nil
}

// ResolvePhoto returns the absolute path of an existing photo file.
func ResolvePhoto(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("photo: %w", validation.ErrEmpty)
	}
	path, err := utils.ExpandHome(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("photo not found: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("photo path %s is a directory", abs)
	}
	return abs, nil
}
