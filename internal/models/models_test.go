package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewCard(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	card := NewCard("item-1", now)

	if card.ID == "" {
		t.Error("ID should be assigned")
	}
	if card.ItemID != "item-1" {
		t.Errorf("ItemID = %v, want item-1", card.ItemID)
	}
	if card.State != StateNew {
		t.Errorf("State = %v, want new", card.State)
	}
	if card.Reps != 0 {
		t.Errorf("Reps = %d, want 0", card.Reps)
	}
	if !card.Due.Equal(now) {
		t.Errorf("Due = %v, want %v", card.Due, now)
	}
	if !card.Created.Equal(now) {
		t.Errorf("Created = %v, want %v", card.Created, now)
	}
	if card.LastReview != nil {
		t.Errorf("LastReview = %v, want nil", card.LastReview)
	}
}

func TestNewCardUniqueIDs(t *testing.T) {
	now := time.Now()
	a := NewCard("item-1", now)
	b := NewCard("item-2", now)
	if a.ID == b.ID {
		t.Errorf("two cards share ID %s", a.ID)
	}
}

func TestCardIsDue(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want bool
	}{
		{"due in the past", now.Add(-time.Hour), true},
		{"due exactly now", now, true},
		{"due in the future", now.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := Card{Due: tt.due}
			if got := card.IsDue(now); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	tests := []struct {
		state State
		json  string
	}{
		{StateNew, `"new"`},
		{StateLearning, `"learning"`},
		{StateReview, `"review"`},
		{StateRelearning, `"relearning"`},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			raw, err := json.Marshal(tt.state)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(raw) != tt.json {
				t.Errorf("Marshal() = %s, want %s", raw, tt.json)
			}

			var got State
			if err := json.Unmarshal(raw, &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got != tt.state {
				t.Errorf("Unmarshal() = %v, want %v", got, tt.state)
			}
		})
	}
}

func TestStateUnmarshalRejectsUnknown(t *testing.T) {
	var s State
	if err := json.Unmarshal([]byte(`"suspended"`), &s); err == nil {
		t.Error("expected error for unknown state name")
	}
}

func TestRatingIsValid(t *testing.T) {
	for rating := RatingAgain; rating <= RatingEasy; rating++ {
		if !rating.IsValid() {
			t.Errorf("rating %d should be valid", int(rating))
		}
	}
	for _, rating := range []Rating{0, 5, -3} {
		if rating.IsValid() {
			t.Errorf("rating %d should be invalid", int(rating))
		}
	}
}

func TestSessionCursor(t *testing.T) {
	session := &Session{
		ID: "s1",
		Plan: []PlanEntry{
			{CardID: "c1", ItemID: "i1"},
			{CardID: "c2", ItemID: "i2"},
		},
	}

	entry, ok := session.CurrentEntry()
	if !ok || entry.ItemID != "i1" {
		t.Fatalf("CurrentEntry() = %v, %v, want i1, true", entry, ok)
	}
	if session.IsComplete() {
		t.Error("session should not be complete at index 0")
	}

	session.Advance()
	entry, ok = session.CurrentEntry()
	if !ok || entry.ItemID != "i2" {
		t.Fatalf("CurrentEntry() after advance = %v, %v, want i2, true", entry, ok)
	}

	session.Advance()
	if _, ok := session.CurrentEntry(); ok {
		t.Error("CurrentEntry() should report absent past the end of the plan")
	}
	if !session.IsComplete() {
		t.Error("session should be complete once the plan is exhausted")
	}
}

func TestSessionSummarize(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Minute)

	session := &Session{
		ID:        "s1",
		StartTime: start,
		Results: []ReviewResult{
			{ItemID: "i1", Rating: RatingGood, Timestamp: start},
			{ItemID: "i2", Rating: RatingAgain, Timestamp: start},
			{ItemID: "i3", Rating: RatingEasy, Timestamp: start},
			{ItemID: "i4", Rating: RatingHard, Timestamp: start},
		},
	}

	summary := session.Summarize(end)

	if summary.CardsReviewed != 4 {
		t.Errorf("CardsReviewed = %d, want 4", summary.CardsReviewed)
	}
	if summary.NewCardsLearned != 2 {
		t.Errorf("NewCardsLearned = %d, want 2", summary.NewCardsLearned)
	}
	if summary.CardsNeedingReview != 2 {
		t.Errorf("CardsNeedingReview = %d, want 2", summary.CardsNeedingReview)
	}
	if want := 2.5; summary.AverageRating != want {
		t.Errorf("AverageRating = %v, want %v", summary.AverageRating, want)
	}
	if !summary.EndTime.Equal(end) || !summary.StartTime.Equal(start) {
		t.Errorf("summary times = %v..%v, want %v..%v", summary.StartTime, summary.EndTime, start, end)
	}
}

func TestSessionSummarizeEmpty(t *testing.T) {
	session := &Session{ID: "s1", StartTime: time.Now()}
	summary := session.Summarize(time.Now())

	if summary.CardsReviewed != 0 || summary.AverageRating != 0 {
		t.Errorf("empty session summary = %+v, want zero counts", summary)
	}
}
