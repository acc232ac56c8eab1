// Package manifest holds the in-memory state of a manifest session: the user
// profile, vision goals, daily rituals, gratitude journal, lifestyle history
// and the current affirmation. Every mutation is applied under a single lock
// to the latest state; calls to external generators happen outside the lock
// and their results are re-applied by id.
package manifest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/manifest/internal/models"
)

// AffirmationGenerator produces a short first-person affirmation.
type AffirmationGenerator interface {
	GenerateAffirmation(ctx context.Context, profile models.UserProfile, goals []models.VisionGoal, kind models.AffirmationType) (string, error)
}

// ImageGenerator renders a visualization for a goal. referencePhoto may be
// empty; when set the user should appear in the image.
type ImageGenerator interface {
	GenerateGoalImage(ctx context.Context, title string, categories []string, referencePhoto string) (string, error)
}

// LifestyleSimulator composites the user's photo into a described scenario.
type LifestyleSimulator interface {
	SimulateLifestyle(ctx context.Context, photoRef, description string) (string, error)
}

// ReminderScheduler installs the two daily reminders.
type ReminderScheduler interface {
	ScheduleReminders(ctx context.Context, times models.ReminderTimes) error
}

var errNoGenerator = errors.New("no generator configured")

type Store struct {
	mu    sync.Mutex
	state models.State

	now   func() time.Time
	newID func() string

	affirmations AffirmationGenerator
	images       ImageGenerator
	lifestyle    LifestyleSimulator
	reminders    ReminderScheduler
}

type Option func(*Store)

// WithClock sets the clock used for timestamps, calendar days and time-of-day.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides id generation.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func WithAffirmationGenerator(g AffirmationGenerator) Option {
	return func(s *Store) { s.affirmations = g }
}

func WithImageGenerator(g ImageGenerator) Option {
	return func(s *Store) { s.images = g }
}

func WithLifestyleSimulator(g LifestyleSimulator) Option {
	return func(s *Store) { s.lifestyle = g }
}

func WithReminderScheduler(r ReminderScheduler) Option {
	return func(s *Store) { s.reminders = r }
}

// New builds a store seeded with initial. The state is copied.
func New(initial models.State, opts ...Option) *Store {
	s := &Store{
		state: initial.Clone(),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.state.Screen == "" {
		s.state.Screen = models.ScreenOnboarding
		if s.state.Profile.IsOnboarded {
			s.state.Screen = models.ScreenTimeline
		}
	}
	return s
}

// update applies fn to the latest state under the lock.
func (s *Store) update(fn func(st *models.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// view returns a copy of the latest state and the current time.
func (s *Store) view() (models.State, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone(), s.now()
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() models.State {
	st, _ := s.view()
	return st
}

func (s *Store) Profile() models.UserProfile {
	return s.Snapshot().Profile
}

func (s *Store) Goals() []models.VisionGoal {
	return s.Snapshot().Goals
}

// Goal returns the goal with id, if present.
func (s *Store) Goal(id string) (models.VisionGoal, bool) {
	for _, g := range s.Goals() {
		if g.ID == id {
			return g, true
		}
	}
	return models.VisionGoal{}, false
}

func (s *Store) Rituals() []models.DailyRitual {
	return s.Snapshot().Rituals
}

func (s *Store) Gratitude() []models.GratitudeEntry {
	return s.Snapshot().Gratitude
}

func (s *Store) LifestyleHistory() []models.LifestyleShift {
	return s.Snapshot().LifestyleHistory
}

func (s *Store) Affirmation() models.Affirmation {
	return s.Snapshot().Affirmation
}

func (s *Store) Screen() models.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Screen
}

func (s *Store) SetScreen(screen models.Screen) {
	s.update(func(st *models.State) { st.Screen = screen })
}

func findGoal(st *models.State, id string) *models.VisionGoal {
	for i := range st.Goals {
		if st.Goals[i].ID == id {
			return &st.Goals[i]
		}
	}
	return nil
}

func findRitual(st *models.State, id string) *models.DailyRitual {
	for i := range st.Rituals {
		if st.Rituals[i].ID == id {
			return &st.Rituals[i]
		}
	}
	return nil
}
