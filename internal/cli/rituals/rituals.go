package rituals

import (
	"fmt"
	"strings"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/validation"
)

// AddCmd adds a ritual to the first goal, or to the general list when there
// are no goals yet.
type AddCmd struct {
	Title string `arg:"" help:"Ritual title."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := validation.ValidateTitle(c.Title); err != nil {
		return err
	}
	return ctx.Update(func(s *cli.Session) error {
		id := s.AddRitual(strings.TrimSpace(c.Title))
		fmt.Printf("Added ritual %s (%s)\n", c.Title, cli.ShortID(id))
		return nil
	})
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Open()
	if err != nil {
		return err
	}
	rituals := s.Rituals()
	if len(rituals) == 0 {
		fmt.Println("No rituals yet. Add one with 'manifest ritual add'.")
		return nil
	}

	titles := map[string]string{constants.GeneralRitualBucket: "General"}
	for _, g := range s.Goals() {
		titles[g.ID] = g.Title
	}

	done := 0
	for _, r := range rituals {
		if r.Completed {
			done++
		}
		goal := titles[r.GoalID]
		if goal == "" {
			goal = "?"
		}
		fmt.Printf("%s %s %s %s\n", cli.Check(r.Completed), r.Title,
			cli.SubtleStyle.Render("· "+goal), cli.SubtleStyle.Render(cli.ShortID(r.ID)))
	}
	fmt.Printf("\n%d/%d done today\n", done, len(rituals))
	return nil
}

type ToggleCmd struct {
	ID string `arg:"" help:"Ritual id or unique prefix."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	return ctx.Update(func(s *cli.Session) error {
		id, err := cli.ResolveID(cli.RitualIDs(s.Rituals()), c.ID)
		if err != nil {
			return err
		}
		s.ToggleRitual(id)
		for _, r := range s.Rituals() {
			if r.ID == id {
				fmt.Printf("%s %s\n", cli.Check(r.Completed), r.Title)
			}
		}
		return nil
	})
}

type RenameCmd struct {
	ID    string `arg:"" help:"Ritual id or unique prefix."`
	Title string `arg:"" help:"New title."`
}

func (c *RenameCmd) Run(ctx *cli.Context) error {
	if err := validation.ValidateTitle(c.Title); err != nil {
		return err
	}
	return ctx.Update(func(s *cli.Session) error {
		id, err := cli.ResolveID(cli.RitualIDs(s.Rituals()), c.ID)
		if err != nil {
			return err
		}
		s.UpdateRitualTitle(id, strings.TrimSpace(c.Title))
		fmt.Println("Ritual renamed.")
		return nil
	})
}

type DeleteCmd struct {
	ID string `arg:"" help:"Ritual id or unique prefix."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	return ctx.Update(func(s *cli.Session) error {
		id, err := cli.ResolveID(cli.RitualIDs(s.Rituals()), c.ID)
		if err != nil {
			return err
		}
		s.DeleteRitual(id)
		fmt.Println("Ritual deleted.")
		return nil
	})
}

// ResetCmd unchecks every ritual.
type ResetCmd struct{}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	return ctx.Update(func(s *cli.Session) error {
		s.ResetDay()
		fmt.Println("All rituals reset for a fresh start.")
		return nil
	})
}
