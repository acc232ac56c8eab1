package affirm

import (
	"fmt"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/models"
)

// ShowCmd prints the current affirmation, generating a fresh one when the
// stored one belongs to another day or slot.
type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	return ctx.Update(func(s *cli.Session) error {
		if s.Profile().Name == "" {
			return fmt.Errorf("no profile yet; run 'manifest onboard' first")
		}
		if s.AffirmationDue() {
			s.RefreshAffirmation(ctx.Context(), nil)
		}
		printAffirmation(s)
		return nil
	})
}

type RefreshCmd struct {
	Type string `arg:"" optional:"" help:"Force a morning or evening affirmation."`
}

func (c *RefreshCmd) Run(ctx *cli.Context) error {
	return ctx.Update(func(s *cli.Session) error {
		if s.Profile().Name == "" {
			return fmt.Errorf("no profile yet; run 'manifest onboard' first")
		}
		var force *models.AffirmationType
		if c.Type != "" {
			t := models.AffirmationType(c.Type)
			if !t.Valid() {
				return fmt.Errorf("invalid affirmation type %q (expected morning or evening)", c.Type)
			}
			force = &t
		}
		s.RefreshAffirmation(ctx.Context(), force)
		printAffirmation(s)
		return nil
	})
}

// AckCmd acknowledges the current affirmation and advances the streak.
type AckCmd struct{}

func (c *AckCmd) Run(ctx *cli.Context) error {
	return ctx.Update(func(s *cli.Session) error {
		if s.Affirmation().Text == "" {
			return fmt.Errorf("no affirmation to acknowledge; run 'manifest affirm show' first")
		}
		if !s.AcknowledgeAffirmation() {
			fmt.Println("Already acknowledged.")
			return nil
		}
		fmt.Printf("✓ Acknowledged. Streak: %s\n",
			cli.SuccessStyle.Render(fmt.Sprintf("%d day(s)", s.Profile().AffirmationStreak)))
		return nil
	})
}

func printAffirmation(s *cli.Session) {
	a := s.Affirmation()
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%s affirmation · %s", a.Type, a.DateGenerated)))
	fmt.Println(cli.AffirmationStyle.Render(a.Text))
	status := "not yet acknowledged (run 'manifest affirm ack')"
	if a.Acknowledged {
		status = "acknowledged"
	}
	fmt.Printf("Streak: %d day(s) · %s\n", s.Profile().AffirmationStreak, status)
}
