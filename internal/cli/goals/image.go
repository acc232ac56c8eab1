package goals

import (
	"errors"
	"fmt"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/cli/profile"
)

type RegenerateCmd struct {
	ID string `arg:"" help:"Goal id or unique prefix."`
}

func (c *RegenerateCmd) Run(ctx *cli.Context) error {
	return ctx.Update(func(s *cli.Session) error {
		id, err := cli.ResolveID(cli.GoalIDs(s.Goals()), c.ID)
		if err != nil {
			return err
		}
		fmt.Println(cli.SubtleStyle.Render("Regenerating vision image..."))
		if !s.RegenerateGoalImage(ctx.Context(), id) {
			return errors.New("image generation failed; see the log for details")
		}
		g, _ := s.Goal(id)
		fmt.Printf("✓ New image for %s: %s\n", g.Title, g.ImageRef)
		return nil
	})
}

// PersonalizeCmd re-renders a goal image with the user in it.
type PersonalizeCmd struct {
	ID    string `arg:"" help:"Goal id or unique prefix."`
	Photo string `help:"Photo to use instead of the profile photo." type:"path"`
}

func (c *PersonalizeCmd) Run(ctx *cli.Context) error {
	return ctx.Update(func(s *cli.Session) error {
		id, err := cli.ResolveID(cli.GoalIDs(s.Goals()), c.ID)
		if err != nil {
			return err
		}

		photo := s.Profile().PhotoRef
		if c.Photo != "" {
			if photo, err = profile.ResolvePhoto(c.Photo); err != nil {
				return err
			}
		}
		if photo == "" {
			return errors.New("no photo available; pass --photo or set one with 'manifest profile set --photo'")
		}

		fmt.Println(cli.SubtleStyle.Render("Placing you in your vision..."))
		if !s.PersonalizeGoalImage(ctx.Context(), id, photo) {
			return errors.New("image generation failed; see the log for details")
		}
		g, _ := s.Goal(id)
		fmt.Printf("✓ Personalized image for %s: %s\n", g.Title, g.ImageRef)
		return nil
	})
}
