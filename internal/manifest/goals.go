package manifest

import (
	"context"
	"slices"

	"github.com/julianstephens/manifest/internal/logger"
	"github.com/julianstephens/manifest/internal/models"
)

// AddGoalAndRitual creates a goal and one ritual per title linked to it, then
// asks the image generator for a visualization. The goal and rituals exist
// before generation starts; a failed generation leaves the goal without an
// image. It returns the new goal's id.
func (s *Store) AddGoalAndRitual(ctx context.Context, in models.GoalInput, ritualTitles []string) string {
	var goalID string
	s.update(func(st *models.State) {
		goal := models.VisionGoal{
			ID:         s.newID(),
			Title:      in.Title,
			Categories: slices.Clone(in.Categories),
			TargetDate: in.TargetDate,
			CreatedAt:  s.now(),
		}
		goalID = goal.ID
		st.Goals = append(st.Goals, goal)

		for _, title := range ritualTitles {
			st.Rituals = append(st.Rituals, models.DailyRitual{
				ID:     s.newID(),
				GoalID: goal.ID,
				Title:  title,
			})
		}
	})

	logger.Info("Added goal", "goal", goalID, "rituals", len(ritualTitles))
	s.renderGoalImage(ctx, goalID, "")
	return goalID
}

// RegenerateGoalImage renders a fresh visualization for the goal. It reports
// whether a new image was applied. A goal that is already regenerating is
// left alone.
func (s *Store) RegenerateGoalImage(ctx context.Context, goalID string) bool {
	return s.renderGoalImage(ctx, goalID, "")
}

// PersonalizeGoalImage is RegenerateGoalImage with the user's photo as a
// reference so they appear in the visualization.
func (s *Store) PersonalizeGoalImage(ctx context.Context, goalID, photoRef string) bool {
	return s.renderGoalImage(ctx, goalID, photoRef)
}

func (s *Store) renderGoalImage(ctx context.Context, goalID, photoRef string) bool {
	var (
		title      string
		categories []string
		claimed    bool
	)
	s.update(func(st *models.State) {
		g := findGoal(st, goalID)
		if g == nil || g.Regenerating {
			return
		}
		g.Regenerating = true
		title = g.Title
		categories = slices.Clone(g.Categories)
		claimed = true
	})
	if !claimed {
		logger.Debug("Skipping goal image generation", "goal", goalID, "reason", "missing or already regenerating")
		return false
	}

	var (
		ref string
		err = errNoGenerator
	)
	if s.images != nil {
		ref, err = s.images.GenerateGoalImage(ctx, title, categories, photoRef)
	}

	applied := false
	s.update(func(st *models.State) {
		g := findGoal(st, goalID)
		if g == nil {
			return
		}
		g.Regenerating = false
		if err == nil && ref != "" {
			g.ImageRef = ref
			applied = true
		}
	})

	if err != nil {
		logger.Error("Goal image generation failed", "goal", goalID, "personalized", photoRef != "", "error", err)
	}
	return applied
}
