package manifest

import (
	"context"

	"github.com/julianstephens/manifest/internal/logger"
	"github.com/julianstephens/manifest/internal/models"
)

// AddToLifestyleHistory records shift as the most recent history entry. The
// id and creation time are assigned here.
func (s *Store) AddToLifestyleHistory(shift models.LifestyleShift) string {
	var id string
	s.update(func(st *models.State) {
		shift.ID = s.newID()
		shift.CreatedAt = s.now()
		id = shift.ID
		st.LifestyleHistory = append([]models.LifestyleShift{shift}, st.LifestyleHistory...)
	})
	return id
}

// SimulateLifestyle runs the lifestyle simulator and records the result. It
// returns the new history id, or false when generation failed.
func (s *Store) SimulateLifestyle(ctx context.Context, photoRef, description string) (string, bool) {
	if s.lifestyle == nil {
		logger.Warn("Lifestyle simulation unavailable", "error", errNoGenerator)
		return "", false
	}
	ref, err := s.lifestyle.SimulateLifestyle(ctx, photoRef, description)
	if err != nil || ref == "" {
		logger.Error("Lifestyle simulation failed", "error", err)
		return "", false
	}
	return s.AddToLifestyleHistory(models.LifestyleShift{ImageRef: ref, Prompt: description}), true
}

func (s *Store) AddGratitude(text string) string {
	var id string
	s.update(func(st *models.State) {
		id = s.newID()
		st.Gratitude = append(st.Gratitude, models.GratitudeEntry{
			ID:        id,
			Text:      text,
			CreatedAt: s.now(),
		})
	})
	return id
}
