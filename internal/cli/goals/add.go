package goals

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/validation"
)

// AddCmd is the goal wizard: a goal, its categories and the daily rituals
// that move it forward. Without a title it runs interactively.
type AddCmd struct {
	Title      string   `arg:"" optional:"" help:"Goal title."`
	Categories []string `short:"c" help:"Life categories (comma-separated)."`
	Target     string   `short:"t" help:"Target date (YYYY-MM-DD)."`
	Rituals    []string `short:"r" help:"Daily rituals for this goal (repeatable)."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if c.Title == "" {
		if err := c.prompt(); err != nil {
			return err
		}
	}

	return ctx.Update(func(s *cli.Session) error {
		now := ctx.Clock(s.Settings)()
		in := models.GoalInput{
			Title:      strings.TrimSpace(c.Title),
			Categories: validation.NormalizeCategories(c.Categories),
			TargetDate: strings.TrimSpace(c.Target),
		}
		rituals := trimAll(c.Rituals)
		if err := validation.ValidateGoalInput(in, rituals, now); err != nil {
			return err
		}

		fmt.Println(cli.SubtleStyle.Render("Visualizing your goal..."))
		id := s.AddGoalAndRitual(ctx.Context(), in, rituals)
		if s.Screen() == models.ScreenWizard {
			s.SetScreen(models.ScreenTimeline)
		}

		fmt.Printf("Added goal %s (%s) with %d ritual(s)\n", cli.TitleStyle.Render(in.Title), cli.ShortID(id), len(rituals))
		if g, ok := s.Goal(id); ok && g.HasImage() {
			fmt.Printf("  Vision image: %s\n", g.ImageRef)
		} else {
			fmt.Println(cli.WarnStyle.Render("  No vision image yet. Try 'manifest goal regenerate " + cli.ShortID(id) + "' later."))
		}
		return nil
	})
}

func (c *AddCmd) prompt() error {
	var ritualText string
	options := make([]huh.Option[string], len(constants.Categories))
	for i, cat := range constants.Categories {
		options[i] = huh.NewOption(cat, cat)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What do you want to manifest?").
				Value(&c.Title).
				Validate(validation.ValidateTitle),
			huh.NewMultiSelect[string]().
				Title("Which areas of life does it touch?").
				Options(options...).
				Value(&c.Categories).
				Validate(validation.ValidateCategories),
			huh.NewInput().
				Title("Target date (YYYY-MM-DD, optional)").
				Value(&c.Target),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Daily rituals").
				Description("One per line.").
				Value(&ritualText),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}
	c.Rituals = append(c.Rituals, strings.Split(ritualText, "\n")...)
	return nil
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
