package models

// Screen identifies which top-level view the app should present.
type Screen string

const (
	ScreenOnboarding Screen = "onboarding"
	ScreenWizard     Screen = "wizard"
	ScreenTimeline   Screen = "timeline"
	ScreenAligner    Screen = "aligner"
	ScreenProfile    Screen = "profile"
)

// State is everything the manifest store holds for one user.
type State struct {
	Profile          UserProfile      `json:"profile"`
	Goals            []VisionGoal     `json:"goals"`
	Rituals          []DailyRitual    `json:"rituals"`
	Gratitude        []GratitudeEntry `json:"gratitude"`
	LifestyleHistory []LifestyleShift `json:"lifestyle_history"`
	Affirmation      Affirmation      `json:"affirmation"`
	Screen           Screen           `json:"screen"`
}

// Clone returns a deep copy so callers cannot mutate shared slices.
func (s State) Clone() State {
	out := s
	if s.Profile.LastAcknowledged != nil {
		t := *s.Profile.LastAcknowledged
		out.Profile.LastAcknowledged = &t
	}

	out.Goals = make([]VisionGoal, len(s.Goals))
	for i, g := range s.Goals {
		out.Goals[i] = g.Clone()
	}
	out.Rituals = make([]DailyRitual, len(s.Rituals))
	for i, r := range s.Rituals {
		out.Rituals[i] = r.Clone()
	}
	out.Gratitude = append([]GratitudeEntry(nil), s.Gratitude...)
	out.LifestyleHistory = append([]LifestyleShift(nil), s.LifestyleHistory...)
	return out
}
