package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/manifest/internal/models"
)

// Offline is used when no API key is configured. Affirmations come from
// templates; images are unavailable.
type Offline struct{}

func (Offline) GenerateAffirmation(ctx context.Context, profile models.UserProfile, goals []models.VisionGoal, kind models.AffirmationType) (string, error) {
	if len(goals) == 0 {
		if kind == models.AffirmationEvening {
			return "I am grateful for today and I grow stronger with every step I take.", nil
		}
		return "I meet today with focus and belief in myself.", nil
	}

	title := strings.TrimSpace(goals[0].Title)
	if kind == models.AffirmationEvening {
		return fmt.Sprintf("Today I moved closer to %s, and I rest knowing it is already on its way.", title), nil
	}
	return fmt.Sprintf("I am living the life where %s is real, and today's actions prove it.", title), nil
}

func (Offline) GenerateGoalImage(ctx context.Context, title string, categories []string, referencePhoto string) (string, error) {
	return "", fmt.Errorf("%w: image generation needs an API key", ErrUnavailable)
}

func (Offline) SimulateLifestyle(ctx context.Context, photoRef, description string) (string, error) {
	return "", fmt.Errorf("%w: lifestyle simulation needs an API key", ErrUnavailable)
}
