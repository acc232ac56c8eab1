package generator

import (
	"fmt"
	"strings"

	"github.com/julianstephens/manifest/internal/models"
)

const affirmationSystemInstruction = "You write single-sentence affirmations. " +
	"Write in the first person and the present tense, as if the goal is already real. " +
	"No quotes, no emojis, no hashtags, at most 25 words."

// maxPromptGoals bounds how many goals are described to the text model.
const maxPromptGoals = 5

// AffirmationPrompt describes the user and their goals for the given slot.
func AffirmationPrompt(profile models.UserProfile, goals []models.VisionGoal, kind models.AffirmationType) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a %s affirmation for %s.\n", kind, strings.TrimSpace(profile.Name))
	switch kind {
	case models.AffirmationEvening:
		b.WriteString("Tone: calm, grateful, reflecting on progress made today.\n")
	default:
		b.WriteString("Tone: energizing, focused on the actions of the day ahead.\n")
	}

	if len(goals) == 0 {
		b.WriteString("They have not written down specific goals yet; speak to growth and self-belief.\n")
		return b.String()
	}

	b.WriteString("Their vision goals:\n")
	for i, g := range goals {
		if i == maxPromptGoals {
			break
		}
		fmt.Fprintf(&b, "- %s", g.Title)
		if len(g.Categories) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(g.Categories, ", "))
		}
		if g.TargetDate != "" {
			fmt.Fprintf(&b, " by %s", g.TargetDate)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// GoalImagePrompt asks for a photographic visualization of a goal achieved.
func GoalImagePrompt(title string, categories []string, personalized bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A vivid, aspirational, photorealistic image of this goal fully achieved: %q.", title)
	if len(categories) > 0 {
		fmt.Fprintf(&b, " Life areas: %s.", strings.Join(categories, ", "))
	}
	if personalized {
		b.WriteString(" The person in the reference photo is the main subject; keep their face and likeness.")
	}
	b.WriteString(" Warm natural light, no text or lettering in the image.")
	return b.String()
}

// LifestylePrompt places the person from the reference photo into description.
func LifestylePrompt(description string) string {
	return fmt.Sprintf("Place the person from the reference photo into this future scenario: %s. "+
		"Keep their face and likeness, photorealistic, cinematic lighting, no text in the image.",
		strings.TrimSpace(description))
}

// CleanAffirmation reduces model output to a single bare sentence.
func CleanAffirmation(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	text = strings.Trim(text, "\"'“”*")
	return strings.TrimSpace(text)
}
