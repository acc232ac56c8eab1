package manifest

import (
	"context"
	"strings"
	"time"

	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/logger"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/utils"
)

// AffirmationTypeAt picks the slot for now: evening once the time of day
// reaches the evening reminder, morning before it. An unparsable evening
// time falls back to the default evening reminder.
func AffirmationTypeAt(now time.Time, evening string) models.AffirmationType {
	threshold, err := utils.ParseTimeToMinutes(evening)
	if err != nil {
		threshold, _ = utils.ParseTimeToMinutes(constants.DefaultEveningReminder)
	}
	if utils.MinutesOfDay(now) >= threshold {
		return models.AffirmationEvening
	}
	return models.AffirmationMorning
}

// NextStreak computes the streak after an acknowledgment at now, given the
// previous acknowledgment and streak. Days are compared as calendar date
// strings in now's location, not by elapsed hours.
func NextStreak(last *time.Time, streak int, now time.Time) int {
	if last == nil {
		return 1
	}
	prev := utils.DateString(last.In(now.Location()))
	switch prev {
	case utils.DateString(now):
		return streak
	case utils.YesterdayString(now):
		return streak + 1
	default:
		return 1
	}
}

// RefreshAffirmation generates a new affirmation for the current slot, or
// for force when it is set. The new affirmation always starts
// unacknowledged. Without a user name nothing happens.
func (s *Store) RefreshAffirmation(ctx context.Context, force *models.AffirmationType) {
	st, now := s.view()
	if strings.TrimSpace(st.Profile.Name) == "" {
		logger.Debug("Skipping affirmation refresh, profile has no name")
		return
	}

	kind := AffirmationTypeAt(now, st.Profile.ReminderTimes.Evening)
	if force != nil && force.Valid() {
		kind = *force
	}

	var (
		text string
		err  = errNoGenerator
	)
	if s.affirmations != nil {
		text, err = s.affirmations.GenerateAffirmation(ctx, st.Profile, st.Goals, kind)
	}
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			logger.Warn("Affirmation generation failed, using fallback", "type", kind, "error", err)
		}
		text = constants.FallbackAffirmation
	}

	s.update(func(st *models.State) {
		st.Affirmation = models.Affirmation{
			Text:          strings.TrimSpace(text),
			Type:          kind,
			DateGenerated: utils.DateString(now),
			Acknowledged:  false,
		}
	})
}

// AffirmationDue reports whether the current affirmation belongs to another
// day or slot and should be refreshed.
func (s *Store) AffirmationDue() bool {
	st, now := s.view()
	a := st.Affirmation
	if a.Text == "" || a.DateGenerated != utils.DateString(now) {
		return true
	}
	return a.Type != AffirmationTypeAt(now, st.Profile.ReminderTimes.Evening)
}

// AcknowledgeAffirmation marks the current affirmation as acknowledged and
// advances the streak. It reports false when it was already acknowledged.
func (s *Store) AcknowledgeAffirmation() bool {
	changed := false
	s.update(func(st *models.State) {
		if st.Affirmation.Acknowledged {
			return
		}
		now := s.now()
		st.Affirmation.Acknowledged = true
		st.Profile.AffirmationStreak = NextStreak(st.Profile.LastAcknowledged, st.Profile.AffirmationStreak, now)
		st.Profile.LastAcknowledged = &now
		changed = true
	})
	return changed
}
