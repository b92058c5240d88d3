package service

import (
	"time"

	"github.com/google/uuid"

	"hanzirecall/internal/models"
)

// defaultCardCount caps a session plan when the caller doesn't ask for a
// specific size.
const defaultCardCount = 20

// SessionOptions selects which card categories enter a session plan and how
// large the plan may grow.
type SessionOptions struct {
	CardCount       int  `json:"cardCount"`
	IncludeNew      bool `json:"includeNew"`
	IncludeDue      bool `json:"includeDue"`
	IncludeLearning bool `json:"includeLearning"`
}

// DefaultSessionOptions returns the standard session shape: up to 20 cards
// from every category.
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		CardCount:       defaultCardCount,
		IncludeNew:      true,
		IncludeDue:      true,
		IncludeLearning: true,
	}
}

// BuildSession assembles a session plan from the collection. Candidates are
// taken in strict priority order: due cards, then learning cards, then new
// cards, preserving stored order within each category and deduplicating by
// card ID. The plan is simply shorter when fewer candidates exist; an empty
// plan is a valid session.
func BuildSession(cards []models.Card, opts SessionOptions, now time.Time) *models.Session {
	if opts.CardCount <= 0 {
		opts.CardCount = defaultCardCount
	}

	session := &models.Session{
		ID:        uuid.New().String(),
		StartTime: now,
	}

	used := make(map[string]bool)
	take := func(keep func(models.Card) bool) {
		for _, card := range cards {
			if len(session.Plan) >= opts.CardCount {
				return
			}
			if used[card.ID] || !keep(card) {
				continue
			}
			used[card.ID] = true
			session.Plan = append(session.Plan, models.PlanEntry{CardID: card.ID, ItemID: card.ItemID})
		}
	}

	if opts.IncludeDue {
		// New cards are due immediately by construction but belong to the new
		// category, not the due pass.
		take(func(c models.Card) bool { return c.State != models.StateNew && c.IsDue(now) })
	}
	if opts.IncludeLearning {
		take(func(c models.Card) bool { return c.State == models.StateLearning })
	}
	if opts.IncludeNew {
		take(func(c models.Card) bool { return c.State == models.StateNew })
	}

	return session
}
