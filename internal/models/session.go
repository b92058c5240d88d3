package models

import "time"

// PlanEntry identifies one card in a session plan. The plan stores identifiers
// rather than card snapshots so that reviews always operate on the freshest
// persisted card state.
type PlanEntry struct {
	CardID string `json:"cardId"`
	ItemID string `json:"itemId"`
}

// ReviewResult records the outcome of a single review within a session.
type ReviewResult struct {
	ItemID    string    `json:"itemId"`
	Rating    Rating    `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one bounded study run: an ordered plan fixed at start and a
// cursor into it. CurrentIndex == len(Plan) denotes completion. A session is
// persisted after every cursor advance so a freshly-loaded context can resume
// where the previous one left off.
type Session struct {
	ID           string         `json:"id"`
	Plan         []PlanEntry    `json:"plan"`
	CurrentIndex int            `json:"currentIndex"`
	StartTime    time.Time      `json:"startTime"`
	Results      []ReviewResult `json:"results"`
}

// CurrentEntry returns the plan entry at the cursor, or false when the plan
// is exhausted.
func (s *Session) CurrentEntry() (PlanEntry, bool) {
	if s.CurrentIndex >= len(s.Plan) {
		return PlanEntry{}, false
	}
	return s.Plan[s.CurrentIndex], true
}

// Advance moves the cursor to the next plan entry.
func (s *Session) Advance() {
	s.CurrentIndex++
}

// IsComplete reports whether the plan is exhausted.
func (s *Session) IsComplete() bool {
	return s.CurrentIndex >= len(s.Plan)
}

// SessionSummary aggregates a finished (or abandoned) session for history.
type SessionSummary struct {
	ID                 string    `json:"id"`
	CardsReviewed      int       `json:"cardsReviewed"`
	AverageRating      float64   `json:"averageRating"`
	NewCardsLearned    int       `json:"newCardsLearned"`
	CardsNeedingReview int       `json:"cardsNeedingReview"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
}

// Summarize aggregates the session's results as of the given end time.
// Reviews rated Good or better count as learned; Again and Hard flag the card
// as still needing work.
func (s *Session) Summarize(end time.Time) SessionSummary {
	summary := SessionSummary{
		ID:            s.ID,
		CardsReviewed: len(s.Results),
		StartTime:     s.StartTime,
		EndTime:       end,
	}

	if len(s.Results) == 0 {
		return summary
	}

	total := 0
	for _, r := range s.Results {
		total += int(r.Rating)
		if r.Rating >= RatingGood {
			summary.NewCardsLearned++
		} else {
			summary.CardsNeedingReview++
		}
	}
	summary.AverageRating = float64(total) / float64(len(s.Results))

	return summary
}
