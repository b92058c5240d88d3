package models

// Stats aggregates the state of the card collection plus session history for
// the progress display.
type Stats struct {
	Total     int     `json:"total"`
	New       int     `json:"new"`
	Learning  int     `json:"learning"`
	Due       int     `json:"due"`
	Reviewed  int     `json:"reviewed"`
	Retention float64 `json:"retention"` // percent of reviewed cards with no lapses

	DueToday             int `json:"dueToday"`
	TotalSessions        int `json:"totalSessions"`
	CardsReviewedToday   int `json:"cardsReviewedToday"`
	AverageSessionLength int `json:"averageSessionLength"`
}
