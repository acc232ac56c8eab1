package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/manifest/internal/models"
)

func TestAffirmationPrompt(t *testing.T) {
	goals := []models.VisionGoal{
		{Title: "Open a bakery", Categories: []string{"Career", "Finance"}, TargetDate: "2027-01-01"},
	}

	morning := AffirmationPrompt(models.UserProfile{Name: " Ada "}, goals, models.AffirmationMorning)
	for _, want := range []string{"morning affirmation for Ada", "Open a bakery (Career, Finance) by 2027-01-01", "energizing"} {
		if !strings.Contains(morning, want) {
			t.Errorf("morning prompt missing %q:\n%s", want, morning)
		}
	}

	evening := AffirmationPrompt(models.UserProfile{Name: "Ada"}, nil, models.AffirmationEvening)
	if !strings.Contains(evening, "grateful") || !strings.Contains(evening, "not written down") {
		t.Errorf("evening prompt without goals unexpected:\n%s", evening)
	}
}

func TestAffirmationPromptCapsGoals(t *testing.T) {
	var goals []models.VisionGoal
	for i := 0; i < maxPromptGoals+3; i++ {
		goals = append(goals, models.VisionGoal{Title: "goal"})
	}
	prompt := AffirmationPrompt(models.UserProfile{Name: "Ada"}, goals, models.AffirmationMorning)
	if n := strings.Count(prompt, "- goal"); n != maxPromptGoals {
		t.Errorf("prompt lists %d goals, want %d", n, maxPromptGoals)
	}
}

func TestCleanAffirmation(t *testing.T) {
	tests := map[string]string{
		"I am enough.":                     "I am enough.",
		"  \"I am enough.\"  ":             "I am enough.",
		"**I am enough.**\nSecond sentence": "I am enough.",
		"“I rise.”":                        "I rise.",
		"":                                 "",
	}
	for in, want := range tests {
		if got := CleanAffirmation(in); got != want {
			t.Errorf("CleanAffirmation(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOffline(t *testing.T) {
	ctx := context.Background()
	var o Offline

	text, err := o.GenerateAffirmation(ctx, models.UserProfile{Name: "Ada"}, []models.VisionGoal{{Title: "a calm home"}}, models.AffirmationEvening)
	if err != nil || !strings.Contains(text, "a calm home") {
		t.Errorf("GenerateAffirmation() = %q, %v", text, err)
	}
	if _, err := o.GenerateGoalImage(ctx, "x", nil, ""); !errors.Is(err, ErrUnavailable) {
		t.Errorf("GenerateGoalImage() error = %v, want ErrUnavailable", err)
	}
	if _, err := o.SimulateLifestyle(ctx, "me.jpg", "x"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("SimulateLifestyle() error = %v, want ErrUnavailable", err)
	}
}
