package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"hanzirecall/internal/models"
	"hanzirecall/internal/storage"
)

// cardsKey is the storage key holding the full card collection.
const cardsKey = "learning/cards"

// CardRepository owns the card collection. The collection is persisted as a
// single value, so every mutation is a full read-modify-write; the internal
// mutex serializes those across add/remove/reset/update to prevent lost
// updates.
type CardRepository struct {
	kv storage.KV
	mu sync.Mutex
}

// NewCardRepository creates a new card repository
func NewCardRepository(kv storage.KV) *CardRepository {
	return &CardRepository{kv: kv}
}

// Load returns all cards in stored order. An absent storage key yields an
// empty collection. Safe to call repeatedly.
func (r *CardRepository) Load(ctx context.Context) ([]models.Card, error) {
	raw, ok, err := r.kv.Get(ctx, cardsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	if !ok {
		return []models.Card{}, nil
	}

	var cards []models.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}
	return cards, nil
}

// Save overwrites the persisted collection with the given cards.
func (r *CardRepository) Save(ctx context.Context, cards []models.Card) error {
	raw, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("failed to encode cards: %w", err)
	}
	if err := r.kv.Set(ctx, cardsKey, raw); err != nil {
		return fmt.Errorf("failed to save cards: %w", err)
	}
	return nil
}

// FindByItemID returns the card for a learning item, or false if none exists.
func (r *CardRepository) FindByItemID(ctx context.Context, itemID string) (models.Card, bool, error) {
	cards, err := r.Load(ctx)
	if err != nil {
		return models.Card{}, false, err
	}
	for _, card := range cards {
		if card.ItemID == itemID {
			return card, true, nil
		}
	}
	return models.Card{}, false, nil
}

// DueCards returns cards whose due time is at or before now, in stored order.
func (r *CardRepository) DueCards(ctx context.Context, now time.Time) ([]models.Card, error) {
	return r.filter(ctx, func(c models.Card) bool { return c.IsDue(now) })
}

// NewCards returns cards that have never been reviewed, in stored order.
func (r *CardRepository) NewCards(ctx context.Context) ([]models.Card, error) {
	return r.filter(ctx, func(c models.Card) bool { return c.State == models.StateNew })
}

// LearningCards returns cards in the learning state, in stored order.
func (r *CardRepository) LearningCards(ctx context.Context) ([]models.Card, error) {
	return r.filter(ctx, func(c models.Card) bool { return c.State == models.StateLearning })
}

func (r *CardRepository) filter(ctx context.Context, keep func(models.Card) bool) ([]models.Card, error) {
	cards, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Card
	for _, card := range cards {
		if keep(card) {
			out = append(out, card)
		}
	}
	return out, nil
}

// Add creates a card for a learning item and persists it. Returns
// ErrDuplicateItem if the item already has a card.
func (r *CardRepository) Add(ctx context.Context, itemID string, now time.Time) (models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.Load(ctx)
	if err != nil {
		return models.Card{}, err
	}
	for _, card := range cards {
		if card.ItemID == itemID {
			return models.Card{}, fmt.Errorf("%w: %s", ErrDuplicateItem, itemID)
		}
	}

	card := models.NewCard(itemID, now)
	cards = append(cards, card)
	if err := r.Save(ctx, cards); err != nil {
		return models.Card{}, err
	}
	return card, nil
}

// Remove deletes the card for a learning item. Returns ErrNotFound if the
// item has no card.
func (r *CardRepository) Remove(ctx context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.Load(ctx)
	if err != nil {
		return err
	}
	for i, card := range cards {
		if card.ItemID == itemID {
			cards = append(cards[:i], cards[i+1:]...)
			return r.Save(ctx, cards)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, itemID)
}

// Reset recreates the card for a learning item in the new state, discarding
// its review history. Returns ErrNotFound if the item has no card.
func (r *CardRepository) Reset(ctx context.Context, itemID string, now time.Time) (models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.Load(ctx)
	if err != nil {
		return models.Card{}, err
	}
	for i, card := range cards {
		if card.ItemID == itemID {
			fresh := models.NewCard(itemID, now)
			cards[i] = fresh
			if err := r.Save(ctx, cards); err != nil {
				return models.Card{}, err
			}
			return fresh, nil
		}
	}
	return models.Card{}, fmt.Errorf("%w: %s", ErrNotFound, itemID)
}

// Update replaces one card in the collection, matched by card ID. Returns
// ErrNotFound if no card with that ID exists.
func (r *CardRepository) Update(ctx context.Context, updated models.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.Load(ctx)
	if err != nil {
		return err
	}
	for i, card := range cards {
		if card.ID == updated.ID {
			cards[i] = updated
			return r.Save(ctx, cards)
		}
	}
	return fmt.Errorf("%w: card %s", ErrNotFound, updated.ID)
}
