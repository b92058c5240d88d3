package models

import (
	"errors"
	"fmt"
)

// ErrInvalidRating is returned when a review is submitted with a rating
// outside the Again..Easy range. Check with errors.Is.
var ErrInvalidRating = errors.New("invalid rating")

// Rating is the learner's self-assessed recall quality for one review.
type Rating int

const (
	RatingAgain Rating = iota + 1 // failed to recall
	RatingHard
	RatingGood
	RatingEasy
)

var ratingNames = [...]string{
	RatingAgain: "again",
	RatingHard:  "hard",
	RatingGood:  "good",
	RatingEasy:  "easy",
}

// IsValid reports whether r is one of the four accepted ratings.
func (r Rating) IsValid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

// String returns the lowercase name of the rating, or "rating(n)" when invalid.
func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("rating(%d)", int(r))
}
