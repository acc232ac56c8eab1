package models

import "time"

type GratitudeEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// LifestyleShift is one generated image of the user inside a described future.
type LifestyleShift struct {
	ID        string    `json:"id"`
	ImageRef  string    `json:"image_ref"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
}
