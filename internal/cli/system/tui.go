package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Open()
	if err != nil {
		return err
	}
	session.SetScreen(models.ScreenAligner)

	save := func() error { return ctx.Save(session) }
	p := tea.NewProgram(tui.NewModel(ctx.Context(), session.Store, save), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	if m, ok := final.(tui.Model); ok {
		m.Wait()
	}

	session.SetScreen(models.ScreenTimeline)
	return ctx.Save(session)
}
