// Package srs implements the simplified FSRS-style review algorithm. The
// update rules are deliberate heuristics with fixed coefficients; changing
// them breaks compatibility with previously scheduled collections.
package srs

import (
	"fmt"
	"math"
	"time"

	"hanzirecall/internal/models"
)

const day = 24 * time.Hour

// firstIntervals maps the first-ever rating of a card to its initial interval
// in days. Again keeps the card due the same day.
var firstIntervals = [...]int{
	models.RatingAgain: 0,
	models.RatingHard:  1,
	models.RatingGood:  3,
	models.RatingEasy:  7,
}

// Review applies one review to a card and returns the updated card. It is a
// pure function: the input card is not modified and no state is touched
// beyond the returned value. Rejects ratings outside Again..Easy.
func Review(card models.Card, rating models.Rating, now time.Time) (models.Card, error) {
	if !rating.IsValid() {
		return models.Card{}, fmt.Errorf("%w: %d", models.ErrInvalidRating, int(rating))
	}

	if card.State == models.StateNew {
		card = reviewFirst(card, rating)
	} else {
		card = reviewSubsequent(card, rating, now)
	}

	card.Due = now.Add(time.Duration(card.ScheduledDays) * day)
	last := now
	card.LastReview = &last

	return card, nil
}

// reviewFirst handles a card's first-ever review: the interval comes from a
// fixed lookup and stability is seeded from it.
func reviewFirst(card models.Card, rating models.Rating) models.Card {
	card.State = models.StateLearning
	card.Reps = 1
	card.ScheduledDays = firstIntervals[rating]
	card.Stability = float64(card.ScheduledDays)
	card.Difficulty = clamp(5-float64(rating-models.RatingGood), 1, 10)
	return card
}

// reviewSubsequent updates stability, difficulty and the next interval for a
// card that has been reviewed before. Elapsed days are measured from the
// previously scheduled due date, not the last actual review, so early and
// late reviews shift the measurement accordingly.
func reviewSubsequent(card models.Card, rating models.Rating, now time.Time) models.Card {
	card.Reps++
	card.ElapsedDays = daysBetween(card.Due, now)

	switch rating {
	case models.RatingAgain:
		card.Difficulty = math.Min(10, card.Difficulty+2)
		card.Stability = math.Max(0.1, card.Stability*0.5)
		card.ScheduledDays = 1
		card.Lapses++
	case models.RatingHard:
		card.Difficulty = math.Min(10, card.Difficulty+0.5)
		card.Stability *= 1.2
		card.ScheduledDays = max(1, int(math.Floor(card.Stability)))
	case models.RatingGood:
		card.Difficulty = math.Max(1, card.Difficulty-0.3)
		card.Stability *= 1.8
		card.ScheduledDays = int(math.Floor(card.Stability * card.Difficulty))
	case models.RatingEasy:
		card.Difficulty = math.Max(1, card.Difficulty-1)
		card.Stability *= 2.5
		card.ScheduledDays = int(math.Floor(card.Stability * card.Difficulty * 1.5))
	}

	card.State = models.StateReview
	return card
}

// daysBetween returns the number of whole days from a to b, never negative.
func daysBetween(a, b time.Time) int {
	if b.Before(a) {
		return 0
	}
	return int(b.Sub(a) / day)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
