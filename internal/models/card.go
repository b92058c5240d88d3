package models

import (
	"time"

	"github.com/google/uuid"
)

// Card holds the memory state for one learning item. A card is created when
// an item is added to learning and is mutated only by the review algorithm.
type Card struct {
	ID            string     `json:"id"`
	ItemID        string     `json:"itemId"`
	Due           time.Time  `json:"due"`
	Stability     float64    `json:"stability"`
	Difficulty    float64    `json:"difficulty"`
	ElapsedDays   int        `json:"elapsedDays"`
	ScheduledDays int        `json:"scheduledDays"`
	Reps          int        `json:"reps"`
	Lapses        int        `json:"lapses"`
	State         State      `json:"state"`
	LastReview    *time.Time `json:"lastReview,omitempty"`
	Created       time.Time  `json:"created"`
}

// NewCard creates a card for a learning item. New cards are due immediately
// so they can enter the next study session.
func NewCard(itemID string, now time.Time) Card {
	return Card{
		ID:      uuid.New().String(),
		ItemID:  itemID,
		Due:     now,
		State:   StateNew,
		Created: now,
	}
}

// IsDue reports whether the card should be presented at the given time.
func (c Card) IsDue(now time.Time) bool {
	return !c.Due.After(now)
}
