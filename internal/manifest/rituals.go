package manifest

import (
	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/utils"
)

// AddRitual creates an incomplete ritual attached to the first goal, or to
// the general bucket when no goal exists. It returns the ritual's id.
func (s *Store) AddRitual(title string) string {
	var id string
	s.update(func(st *models.State) {
		goalID := constants.GeneralRitualBucket
		if len(st.Goals) > 0 {
			goalID = st.Goals[0].ID
		}
		id = s.newID()
		st.Rituals = append(st.Rituals, models.DailyRitual{
			ID:     id,
			GoalID: goalID,
			Title:  title,
		})
	})
	return id
}

// DeleteRitual removes the ritual and reports whether it existed.
func (s *Store) DeleteRitual(id string) bool {
	found := false
	s.update(func(st *models.State) {
		for i := range st.Rituals {
			if st.Rituals[i].ID == id {
				st.Rituals = append(st.Rituals[:i], st.Rituals[i+1:]...)
				found = true
				return
			}
		}
	})
	return found
}

func (s *Store) UpdateRitualTitle(id, title string) bool {
	found := false
	s.update(func(st *models.State) {
		if r := findRitual(st, id); r != nil {
			r.Title = title
			found = true
		}
	})
	return found
}

// ToggleRitual flips the completed flag. Completing stamps LastCompleted;
// un-completing keeps the previous stamp.
func (s *Store) ToggleRitual(id string) bool {
	found := false
	s.update(func(st *models.State) {
		r := findRitual(st, id)
		if r == nil {
			return
		}
		found = true
		r.Completed = !r.Completed
		if r.Completed {
			now := s.now()
			r.LastCompleted = &now
		}
	})
	return found
}

// ResetDay clears every ritual's completed flag for a new day.
func (s *Store) ResetDay() {
	s.update(func(st *models.State) {
		for i := range st.Rituals {
			st.Rituals[i].Completed = false
		}
	})
}

// RolloverIfNewDay resets the day when a ritual is still marked completed
// from an earlier calendar day. It reports whether a reset happened.
func (s *Store) RolloverIfNewDay() bool {
	rolled := false
	s.update(func(st *models.State) {
		now := s.now()
		today := utils.DateString(now)
		stale := false
		for _, r := range st.Rituals {
			if !r.Completed {
				continue
			}
			if r.LastCompleted == nil || utils.DateString(r.LastCompleted.In(now.Location())) != today {
				stale = true
				break
			}
		}
		if !stale {
			return
		}
		for i := range st.Rituals {
			st.Rituals[i].Completed = false
		}
		rolled = true
	})
	return rolled
}
