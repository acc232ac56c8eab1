package journal

import (
	"fmt"
	"strings"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/validation"
)

type GratitudeAddCmd struct {
	Text []string `arg:"" help:"What you are grateful for."`
}

func (c *GratitudeAddCmd) Run(ctx *cli.Context) error {
	text := strings.TrimSpace(strings.Join(c.Text, " "))
	if text == "" {
		return fmt.Errorf("gratitude entry: %w", validation.ErrEmpty)
	}
	return ctx.Update(func(s *cli.Session) error {
		id := s.AddGratitude(text)
		fmt.Printf("✓ Noted (%s)\n", cli.ShortID(id))
		return nil
	})
}

type GratitudeListCmd struct {
	Limit int `help:"Show only the most recent entries." default:"0"`
}

func (c *GratitudeListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Open()
	if err != nil {
		return err
	}
	entries := s.Gratitude()
	if len(entries) == 0 {
		fmt.Println("No gratitude entries yet. Add one with 'manifest gratitude add'.")
		return nil
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[len(entries)-c.Limit:]
	}
	fmt.Println(cli.TitleStyle.Render("Gratitude"))
	for _, e := range entries {
		fmt.Printf("  %s  %s\n", cli.SubtleStyle.Render(e.CreatedAt.Format(constants.DateFormat)), e.Text)
	}
	return nil
}
