package journal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/cli/profile"
	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/validation"
)

// LifestyleSimulateCmd places the user's photo into a described future.
type LifestyleSimulateCmd struct {
	Description []string `arg:"" help:"The lifestyle to picture, e.g. 'running a bakery in Lisbon'."`
	Photo       string   `help:"Photo to use instead of the profile photo." type:"path"`
}

func (c *LifestyleSimulateCmd) Run(ctx *cli.Context) error {
	desc := strings.TrimSpace(strings.Join(c.Description, " "))
	if desc == "" {
		return fmt.Errorf("description: %w", validation.ErrEmpty)
	}
	return ctx.Update(func(s *cli.Session) error {
		photo := s.Profile().PhotoRef
		if c.Photo != "" {
			var err error
			if photo, err = profile.ResolvePhoto(c.Photo); err != nil {
				return err
			}
		}
		if photo == "" {
			return errors.New("no photo available; pass --photo or set one with 'manifest profile set --photo'")
		}

		fmt.Println(cli.SubtleStyle.Render("Shifting your reality..."))
		id, ok := s.SimulateLifestyle(ctx.Context(), photo, desc)
		if !ok {
			return errors.New("lifestyle simulation failed; see the log for details")
		}
		shift := s.LifestyleHistory()[0]
		fmt.Printf("✓ Saved %s (%s)\n", shift.ImageRef, cli.ShortID(id))
		return nil
	})
}

type LifestyleHistoryCmd struct{}

func (c *LifestyleHistoryCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Open()
	if err != nil {
		return err
	}
	history := s.LifestyleHistory()
	if len(history) == 0 {
		fmt.Println("No simulations yet. Try 'manifest lifestyle simulate'.")
		return nil
	}
	fmt.Println(cli.TitleStyle.Render("Lifestyle shifts"))
	for _, h := range history {
		fmt.Printf("  %s  %s  %s\n",
			cli.SubtleStyle.Render(h.CreatedAt.Format(constants.DateFormat)), h.Prompt, cli.SubtleStyle.Render(h.ImageRef))
	}
	return nil
}
