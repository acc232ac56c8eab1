package goals

import (
	"fmt"
	"strings"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/constants"
)

type ListCmd struct {
	Category string `short:"c" help:"Only show goals in this category."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Open()
	if err != nil {
		return err
	}

	goals := s.Goals()
	rituals := s.Rituals()
	shown := 0
	for _, g := range goals {
		if c.Category != "" && !containsFold(g.Categories, c.Category) {
			continue
		}
		shown++

		fmt.Printf("%s %s\n", cli.TitleStyle.Render(g.Title), cli.SubtleStyle.Render("("+cli.ShortID(g.ID)+")"))
		if len(g.Categories) > 0 {
			fmt.Printf("  %s\n", strings.Join(g.Categories, " · "))
		}
		if g.TargetDate != "" {
			fmt.Printf("  Target: %s\n", g.TargetDate)
		}
		if g.HasImage() {
			fmt.Printf("  Image:  %s\n", g.ImageRef)
		}
		for _, r := range rituals {
			if r.GoalID == g.ID {
				fmt.Printf("  %s %s %s\n", cli.Check(r.Completed), r.Title, cli.SubtleStyle.Render(cli.ShortID(r.ID)))
			}
		}
	}

	var general int
	for _, r := range rituals {
		if r.GoalID == constants.GeneralRitualBucket {
			general++
		}
	}

	if shown == 0 {
		fmt.Println("No goals found. Run 'manifest goal add' to create one.")
	}
	if general > 0 && c.Category == "" {
		fmt.Printf("\n%d general ritual(s); see 'manifest ritual list'.\n", general)
	}
	return nil
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
