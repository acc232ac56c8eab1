package models

import "time"

// ReminderTimes holds the two daily reminder slots in HH:MM format.
type ReminderTimes struct {
	Morning string `json:"morning"`
	Evening string `json:"evening"`
}

type UserProfile struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	PhotoRef          string        `json:"photo_ref,omitempty"`
	IsOnboarded       bool          `json:"is_onboarded"`
	ScheduleSet       bool          `json:"schedule_set"`
	AffirmationStreak int           `json:"affirmation_streak"`
	LastAcknowledged  *time.Time    `json:"last_acknowledged,omitempty"`
	ReminderTimes     ReminderTimes `json:"reminder_times"`
}

// UserPatch is a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Name          *string
	PhotoRef      *string
	IsOnboarded   *bool
	ReminderTimes *ReminderTimes
}

// Apply merges the patch into p and returns the result.
func (u UserPatch) Apply(p UserProfile) UserProfile {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.PhotoRef != nil {
		p.PhotoRef = *u.PhotoRef
	}
	if u.IsOnboarded != nil {
		p.IsOnboarded = *u.IsOnboarded
	}
	if u.ReminderTimes != nil {
		p.ReminderTimes = *u.ReminderTimes
	}
	return p
}

// Empty reports whether the patch changes nothing.
func (u UserPatch) Empty() bool {
	return u.Name == nil && u.PhotoRef == nil && u.IsOnboarded == nil && u.ReminderTimes == nil
}
