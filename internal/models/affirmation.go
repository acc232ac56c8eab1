package models

type AffirmationType string

const (
	AffirmationMorning AffirmationType = "morning"
	AffirmationEvening AffirmationType = "evening"
)

func (t AffirmationType) Valid() bool {
	return t == AffirmationMorning || t == AffirmationEvening
}

type Affirmation struct {
	Text          string          `json:"text"`
	Type          AffirmationType `json:"type"`
	DateGenerated string          `json:"date_generated,omitempty"` // YYYY-MM-DD format
	Acknowledged  bool            `json:"acknowledged"`
}
