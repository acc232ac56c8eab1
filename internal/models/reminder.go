package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/manifest/internal/constants"
)

// Reminder is one of the two daily local notifications.
type Reminder struct {
	ID        string          `json:"id"`
	Slot      AffirmationType `json:"slot"`
	Message   string          `json:"message"`
	Time      string          `json:"time"` // HH:MM format
	Active    bool            `json:"active"`
	LastSent  *time.Time      `json:"last_sent,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r *Reminder) Validate() error {
	if r.Message == "" {
		return fmt.Errorf("reminder message cannot be empty")
	}
	if !r.Slot.Valid() {
		return fmt.Errorf("invalid reminder slot %q", r.Slot)
	}
	if r.Time == "" {
		return fmt.Errorf("reminder time cannot be empty")
	}
	if _, err := time.Parse(constants.TimeFormat, r.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}
	return nil
}

// SentOn reports whether the reminder already fired on the calendar day of now.
func (r *Reminder) SentOn(now time.Time) bool {
	if r.LastSent == nil {
		return false
	}
	return r.LastSent.In(now.Location()).Format(constants.DateFormat) == now.Format(constants.DateFormat)
}

// IsDueAt reports whether the reminder should fire at now. A reminder is due
// from its scheduled minute until graceMin minutes later, once per day.
func (r *Reminder) IsDueAt(now time.Time, graceMin int) bool {
	if !r.Active || r.SentOn(now) {
		return false
	}
	t, err := time.Parse(constants.TimeFormat, r.Time)
	if err != nil {
		return false
	}
	scheduled := t.Hour()*60 + t.Minute()
	current := now.Hour()*60 + now.Minute()
	if graceMin < 0 {
		graceMin = 0
	}
	return current >= scheduled && current <= scheduled+graceMin
}
