package tui

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	profile := m.store.Profile()
	var b strings.Builder

	name := profile.Name
	if name == "" {
		name = "friend"
	}
	b.WriteString(titleStyle.Render("Good to see you, " + name))
	b.WriteString("\n\n")

	a := m.store.Affirmation()
	switch {
	case m.refreshing:
		b.WriteString(m.spinner.View() + " Aligning your affirmation...")
	case a.Text == "":
		b.WriteString(subtleStyle.Render("No affirmation yet. Press r to generate one."))
	default:
		b.WriteString(subtleStyle.Render(fmt.Sprintf("%s affirmation", a.Type)))
		b.WriteString("\n")
		b.WriteString(affirmationStyle.Render(a.Text))
		b.WriteString("\n")
		if a.Acknowledged {
			b.WriteString(doneStyle.UnsetStrikethrough().Render("✓ acknowledged"))
		} else {
			b.WriteString(warningStyle.Render("press a to acknowledge"))
		}
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Streak: %d day(s)\n\n", profile.AffirmationStreak))

	b.WriteString(titleStyle.Render("Today's rituals"))
	b.WriteString("\n")
	if len(m.rituals) == 0 {
		b.WriteString(subtleStyle.Render("  No rituals yet. Add one with 'manifest ritual add'."))
		b.WriteString("\n")
	}
	for i, r := range m.rituals {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		line := "○ " + r.Title
		if r.Completed {
			line = doneStyle.Render("✓ " + r.Title)
		}
		b.WriteString(cursor + line + "\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("Could not save: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return docStyle.Render(b.String())
}
