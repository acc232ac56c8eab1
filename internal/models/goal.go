package models

import (
	"slices"
	"time"
)

type VisionGoal struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Categories   []string  `json:"categories"`
	TargetDate   string    `json:"target_date,omitempty"` // YYYY-MM-DD format
	CreatedAt    time.Time `json:"created_at"`
	ImageRef     string    `json:"image_ref,omitempty"`
	Regenerating bool      `json:"regenerating"`
}

// GoalInput is what the goal wizard collects before a goal exists.
type GoalInput struct {
	Title      string   `json:"title"`
	Categories []string `json:"categories"`
	TargetDate string   `json:"target_date,omitempty"`
}

// HasImage reports whether a visualization has been generated for the goal.
func (g VisionGoal) HasImage() bool {
	return g.ImageRef != ""
}

func (g VisionGoal) Clone() VisionGoal {
	g.Categories = slices.Clone(g.Categories)
	return g
}

type DailyRitual struct {
	ID            string     `json:"id"`
	GoalID        string     `json:"goal_id"`
	Title         string     `json:"title"`
	Completed     bool       `json:"completed"`
	LastCompleted *time.Time `json:"last_completed,omitempty"`
}

func (r DailyRitual) Clone() DailyRitual {
	if r.LastCompleted != nil {
		t := *r.LastCompleted
		r.LastCompleted = &t
	}
	return r
}
