package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"hanzirecall/internal/models"
	"hanzirecall/internal/storage"
)

func newCardRepo() *CardRepository {
	return NewCardRepository(storage.NewMemory())
}

func TestLoadEmptyStore(t *testing.T) {
	repo := newCardRepo()
	ctx := context.Background()

	cards, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("Load() = %d cards, want 0", len(cards))
	}
}

// Load without an intervening Save must return equal collections.
func TestLoadIdempotent(t *testing.T) {
	repo := newCardRepo()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if _, err := repo.Add(ctx, "item-1", now); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := repo.Add(ctx, "item-2", now); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	first, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Load() differs: %+v != %+v", first, second)
	}
}

func TestAddDuplicate(t *testing.T) {
	repo := newCardRepo()
	ctx := context.Background()
	now := time.Now()

	if _, err := repo.Add(ctx, "item-1", now); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := repo.Add(ctx, "item-1", now); !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("second Add() error = %v, want ErrDuplicateItem", err)
	}

	cards, _ := repo.Load(ctx)
	if len(cards) != 1 {
		t.Errorf("collection has %d cards after duplicate add, want 1", len(cards))
	}
}

func TestFindByItemID(t *testing.T) {
	repo := newCardRepo()
	ctx := context.Background()
	now := time.Now()

	added, err := repo.Add(ctx, "item-1", now)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	card, found, err := repo.FindByItemID(ctx, "item-1")
	if err != nil || !found {
		t.Fatalf("FindByItemID() = %v, %v, %v", card, found, err)
	}
	if card.ID != added.ID {
		t.Errorf("found card ID = %v, want %v", card.ID, added.ID)
	}

	if _, found, _ := repo.FindByItemID(ctx, "missing"); found {
		t.Error("FindByItemID() found a card for an unknown item")
	}
}

func TestRemove(t *testing.T) {
	repo := newCardRepo()
	ctx := context.Background()
	now := time.Now()

	if _, err := repo.Add(ctx, "item-1", now); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := repo.Remove(ctx, "item-1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := repo.Remove(ctx, "item-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove() of absent item error = %v, want ErrNotFound", err)
	}
}

func TestReset(t *testing.T) {
	repo := newCardRepo()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	added, err := repo.Add(ctx, "item-1", now)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Simulate review history on the stored card.
	reviewed := added
	reviewed.Reps = 4
	reviewed.Lapses = 1
	reviewed.State = models.StateReview
	reviewed.Stability = 12
	if err := repo.Update(ctx, reviewed); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	later := now.Add(48 * time.Hour)
	fresh, err := repo.Reset(ctx, "item-1", later)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if fresh.State != models.StateNew || fresh.Reps != 0 || fresh.Stability != 0 {
		t.Errorf("Reset() card = %+v, want pristine new card", fresh)
	}
	if fresh.ID == added.ID {
		t.Error("Reset() should assign a new card ID")
	}

	if _, err := repo.Reset(ctx, "missing", later); !errors.Is(err, ErrNotFound) {
		t.Errorf("Reset() of absent item error = %v, want ErrNotFound", err)
	}
}

func TestUpdateUnknownCard(t *testing.T) {
	repo := newCardRepo()
	ctx := context.Background()

	err := repo.Update(ctx, models.Card{ID: "ghost", ItemID: "item-1"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestQueriesPreserveStoredOrder(t *testing.T) {
	repo := newCardRepo()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for _, itemID := range []string{"a", "b", "c", "d"} {
		if _, err := repo.Add(ctx, itemID, now); err != nil {
			t.Fatalf("Add(%s) error = %v", itemID, err)
		}
	}

	newCards, err := repo.NewCards(ctx)
	if err != nil {
		t.Fatalf("NewCards() error = %v", err)
	}
	got := make([]string, len(newCards))
	for i, card := range newCards {
		got[i] = card.ItemID
	}
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NewCards() order = %v, want %v", got, want)
	}
}

func TestCategoryQueries(t *testing.T) {
	repo := newCardRepo()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// One new card, one learning card due in the future, one review card past due.
	if _, err := repo.Add(ctx, "fresh", now); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	learning, err := repo.Add(ctx, "studying", now)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	learning.State = models.StateLearning
	learning.Reps = 1
	learning.Due = now.Add(24 * time.Hour)
	if err := repo.Update(ctx, learning); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	overdue, err := repo.Add(ctx, "overdue", now)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	overdue.State = models.StateReview
	overdue.Reps = 3
	overdue.Due = now.Add(-24 * time.Hour)
	if err := repo.Update(ctx, overdue); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	due, err := repo.DueCards(ctx, now)
	if err != nil {
		t.Fatalf("DueCards() error = %v", err)
	}
	// The new card is due immediately; the overdue review card is due too.
	if len(due) != 2 {
		t.Errorf("DueCards() = %d cards, want 2", len(due))
	}

	newCards, _ := repo.NewCards(ctx)
	if len(newCards) != 1 || newCards[0].ItemID != "fresh" {
		t.Errorf("NewCards() = %+v, want just the fresh card", newCards)
	}

	learningCards, _ := repo.LearningCards(ctx)
	if len(learningCards) != 1 || learningCards[0].ItemID != "studying" {
		t.Errorf("LearningCards() = %+v, want just the studying card", learningCards)
	}
}
