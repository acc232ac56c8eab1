// Package generator talks to the text and image models behind affirmations,
// goal visualizations and lifestyle simulations.
package generator

import (
	"context"
	"errors"

	"github.com/julianstephens/manifest/internal/logger"
	"github.com/julianstephens/manifest/internal/models"
)

// Generator is the full set of generation capabilities the app consumes.
type Generator interface {
	GenerateAffirmation(ctx context.Context, profile models.UserProfile, goals []models.VisionGoal, kind models.AffirmationType) (string, error)
	GenerateGoalImage(ctx context.Context, title string, categories []string, referencePhoto string) (string, error)
	SimulateLifestyle(ctx context.Context, photoRef, description string) (string, error)
}

// New returns a Gemini generator when an API key is configured and the
// offline generator otherwise.
func New(ctx context.Context, cfg Config) Generator {
	if cfg.APIKey == "" {
		logger.Info("No API key configured, using offline generator")
		return Offline{}
	}
	g, err := NewGemini(ctx, cfg)
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			logger.Warn("Falling back to offline generator", "error", err)
		}
		return Offline{}
	}
	return g
}
