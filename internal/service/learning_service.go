package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hanzirecall/internal/models"
	"hanzirecall/internal/repository"
	"hanzirecall/internal/srs"
)

// RateResult reports the outcome of rating the current card: the reviewed
// card's new state and either the identity of the next card to show or the
// completed flag.
type RateResult struct {
	Card       models.Card            `json:"card"`
	Completed  bool                   `json:"completed"`
	NextItemID string                 `json:"nextItemId,omitempty"`
	NextCardID string                 `json:"nextCardId,omitempty"`
	Remaining  int                    `json:"remaining"`
	Summary    *models.SessionSummary `json:"summary,omitempty"`
}

// LearningService coordinates study sessions across contexts. The session
// record lives in persistent storage so a freshly loaded page resumes where
// the previous one left off; the mutex serializes rating operations so two
// near-simultaneous ratings can't both read the same cursor position.
type LearningService struct {
	cards    *repository.CardRepository
	sessions *repository.SessionRepository
	mu       sync.Mutex
}

// NewLearningService creates a new learning service
func NewLearningService(cards *repository.CardRepository, sessions *repository.SessionRepository) *LearningService {
	return &LearningService{cards: cards, sessions: sessions}
}

// StartSession builds a session plan from the collection and persists it as
// the active session, replacing any session already in progress.
func (s *LearningService) StartSession(ctx context.Context, opts SessionOptions, now time.Time) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.cards.Load(ctx)
	if err != nil {
		return nil, err
	}

	session := BuildSession(cards, opts, now)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ActiveSession returns the persisted session, or nil when none is in
// progress.
func (s *LearningService) ActiveSession(ctx context.Context) (*models.Session, error) {
	return s.sessions.Get(ctx)
}

// CurrentCard resolves the session cursor to a full card. The second return
// is false when there is no active session or the plan is exhausted.
func (s *LearningService) CurrentCard(ctx context.Context) (models.Card, bool, error) {
	session, err := s.sessions.Get(ctx)
	if err != nil {
		return models.Card{}, false, err
	}
	if session == nil {
		return models.Card{}, false, nil
	}

	entry, ok := session.CurrentEntry()
	if !ok {
		return models.Card{}, false, nil
	}

	card, found, err := s.cards.FindByItemID(ctx, entry.ItemID)
	if err != nil {
		return models.Card{}, false, err
	}
	if !found {
		return models.Card{}, false, fmt.Errorf("%w: %s", repository.ErrNotFound, entry.ItemID)
	}
	return card, true, nil
}

// RateCurrentAndAdvance applies one rating to the session's current card and
// moves the cursor forward, as a single serialized step. The reviewed card is
// persisted before the session record is touched, so a crash in between never
// loses a rating nor double-advances the cursor.
func (s *LearningService) RateCurrentAndAdvance(ctx context.Context, itemID string, rating models.Rating, now time.Time) (RateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(ctx)
	if err != nil {
		return RateResult{}, err
	}
	if session == nil {
		return RateResult{}, ErrNoActiveSession
	}

	entry, ok := session.CurrentEntry()
	if !ok {
		return RateResult{}, ErrNoActiveSession
	}
	if entry.ItemID != itemID {
		return RateResult{}, fmt.Errorf("%w: got %s, expected %s", ErrCardMismatch, itemID, entry.ItemID)
	}

	card, found, err := s.cards.FindByItemID(ctx, entry.ItemID)
	if err != nil {
		return RateResult{}, err
	}
	if !found {
		return RateResult{}, fmt.Errorf("%w: %s", repository.ErrNotFound, entry.ItemID)
	}

	reviewed, err := srs.Review(card, rating, now)
	if err != nil {
		return RateResult{}, err
	}

	// The card update must be durable before the cursor advances.
	if err := s.cards.Update(ctx, reviewed); err != nil {
		return RateResult{}, err
	}

	session.Results = append(session.Results, models.ReviewResult{
		ItemID:    itemID,
		Rating:    rating,
		Timestamp: now,
	})
	session.Advance()

	result := RateResult{Card: reviewed}

	if session.IsComplete() {
		summary := session.Summarize(now)
		if err := s.sessions.AppendSummary(ctx, summary); err != nil {
			return RateResult{}, err
		}
		if err := s.sessions.Delete(ctx); err != nil {
			return RateResult{}, err
		}
		result.Completed = true
		result.Summary = &summary
		return result, nil
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return RateResult{}, err
	}

	next := session.Plan[session.CurrentIndex]
	result.NextItemID = next.ItemID
	result.NextCardID = next.CardID
	result.Remaining = len(session.Plan) - session.CurrentIndex
	return result, nil
}

// EndSession discards the active session, recording a summary of whatever
// was reviewed so far. Returns ErrNoActiveSession when nothing is in
// progress.
func (s *LearningService) EndSession(ctx context.Context, now time.Time) (models.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(ctx)
	if err != nil {
		return models.SessionSummary{}, err
	}
	if session == nil {
		return models.SessionSummary{}, ErrNoActiveSession
	}

	summary := session.Summarize(now)
	if err := s.sessions.AppendSummary(ctx, summary); err != nil {
		return models.SessionSummary{}, err
	}
	if err := s.sessions.Delete(ctx); err != nil {
		return models.SessionSummary{}, err
	}
	return summary, nil
}

// AddItem adds a learning item to the collection. Callers treat
// ErrDuplicateItem as "already present", not a hard failure.
func (s *LearningService) AddItem(ctx context.Context, itemID string, now time.Time) (models.Card, error) {
	return s.cards.Add(ctx, itemID, now)
}

// RemoveItem drops a learning item's card.
func (s *LearningService) RemoveItem(ctx context.Context, itemID string) error {
	return s.cards.Remove(ctx, itemID)
}

// ResetItem discards an item's review history, recreating its card as new.
func (s *LearningService) ResetItem(ctx context.Context, itemID string, now time.Time) (models.Card, error) {
	return s.cards.Reset(ctx, itemID, now)
}

// Cards returns the full collection.
func (s *LearningService) Cards(ctx context.Context) ([]models.Card, error) {
	return s.cards.Load(ctx)
}

// Stats aggregates collection counts, retention and session-history figures
// for the progress display.
func (s *LearningService) Stats(ctx context.Context, now time.Time) (models.Stats, error) {
	cards, err := s.cards.Load(ctx)
	if err != nil {
		return models.Stats{}, err
	}

	stats := models.Stats{Total: len(cards)}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	lapsed := 0
	for _, card := range cards {
		switch card.State {
		case models.StateNew:
			stats.New++
		case models.StateLearning:
			stats.Learning++
		}
		if card.IsDue(now) {
			stats.Due++
		}
		if card.Reps > 0 {
			stats.Reviewed++
			if card.Lapses > 0 {
				lapsed++
			}
		}
		if !card.Due.Before(today) && card.Due.Before(tomorrow) {
			stats.DueToday++
		}
	}
	if stats.Reviewed > 0 {
		stats.Retention = float64(stats.Reviewed-lapsed) / float64(stats.Reviewed) * 100
	}

	history, err := s.sessions.History(ctx)
	if err != nil {
		return models.Stats{}, err
	}

	stats.TotalSessions = len(history)
	reviewedTotal := 0
	for _, summary := range history {
		reviewedTotal += summary.CardsReviewed
		if !summary.StartTime.Before(today) && summary.StartTime.Before(tomorrow) {
			stats.CardsReviewedToday += summary.CardsReviewed
		}
	}
	if len(history) > 0 {
		stats.AverageSessionLength = (reviewedTotal + len(history)/2) / len(history)
	}

	return stats, nil
}
