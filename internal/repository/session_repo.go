package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"hanzirecall/internal/models"
	"hanzirecall/internal/storage"
)

const (
	// sessionKey holds the single active session record.
	sessionKey = "learning/session"
	// historyKey holds summaries of past sessions.
	historyKey = "learning/history"

	// historyLimit caps how many past session summaries are kept.
	historyLimit = 50
)

// SessionRepository persists the active session record and the session
// history. The active session is the hand-off payload between independently
// loaded contexts: it is written after every cursor advance.
type SessionRepository struct {
	kv storage.KV
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(kv storage.KV) *SessionRepository {
	return &SessionRepository{kv: kv}
}

// Get returns the active session, or nil if none is in progress.
func (r *SessionRepository) Get(ctx context.Context) (*models.Session, error) {
	raw, ok, err := r.kv.Get(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// Save overwrites the active session record.
func (r *SessionRepository) Save(ctx context.Context, session *models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.kv.Set(ctx, sessionKey, raw); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the active session record.
func (r *SessionRepository) Delete(ctx context.Context) error {
	if err := r.kv.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// History returns past session summaries, oldest first.
func (r *SessionRepository) History(ctx context.Context) ([]models.SessionSummary, error) {
	raw, ok, err := r.kv.Get(ctx, historyKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}
	if !ok {
		return []models.SessionSummary{}, nil
	}

	var history []models.SessionSummary
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, fmt.Errorf("failed to decode session history: %w", err)
	}
	return history, nil
}

// AppendSummary adds a finished session's summary to the history, trimming
// to the most recent entries.
func (r *SessionRepository) AppendSummary(ctx context.Context, summary models.SessionSummary) error {
	history, err := r.History(ctx)
	if err != nil {
		return err
	}

	history = append(history, summary)
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode session history: %w", err)
	}
	if err := r.kv.Set(ctx, historyKey, raw); err != nil {
		return fmt.Errorf("failed to save session history: %w", err)
	}
	return nil
}
