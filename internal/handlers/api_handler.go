package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"hanzirecall/internal/credentials"
	"hanzirecall/internal/models"
	"hanzirecall/internal/repository"
	"hanzirecall/internal/service"
)

// APIHandler serves the JSON API consumed by the UI and navigation contexts.
type APIHandler struct {
	learning *service.LearningService
	signer   *credentials.TokenSigner
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(learning *service.LearningService, signer *credentials.TokenSigner) *APIHandler {
	return &APIHandler{learning: learning, signer: signer}
}

type addCardRequest struct {
	ItemID string `json:"itemId"`
}

// AddCard handles POST /api/cards. A duplicate add is reported as "already
// present", not a failure: the UI fires it whenever the learner clicks an
// item they may have added before.
func (h *APIHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	var req addCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" {
		respondWithError(w, http.StatusBadRequest, "itemId is required", "", err)
		return
	}

	card, err := h.learning.AddItem(r.Context(), req.ItemID, time.Now())
	if errors.Is(err, repository.ErrDuplicateItem) {
		respondJSON(w, http.StatusOK, map[string]any{"status": "already present"})
		return
	}
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, card)
}

// ListCards handles GET /api/cards.
func (h *APIHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.learning.Cards(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

// RemoveCard handles DELETE /api/cards/{itemId}.
func (h *APIHandler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("itemId")
	if err := h.learning.RemoveItem(r.Context(), itemID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "removed"})
}

// ResetCard handles POST /api/cards/{itemId}/reset.
func (h *APIHandler) ResetCard(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("itemId")
	card, err := h.learning.ResetItem(r.Context(), itemID, time.Now())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

// GetStats handles GET /api/stats.
func (h *APIHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.learning.Stats(r.Context(), time.Now())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

type startSessionResponse struct {
	Session *models.Session `json:"session"`
	Token   string          `json:"token"`
}

// StartSession handles POST /api/session/start. The body may carry session
// options; an empty body means the defaults. The response includes the
// bearer token that authorizes rate and end calls for this session.
func (h *APIHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	// An empty body means the default options.
	opts := service.DefaultSessionOptions()
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, "malformed session options", "", err)
		return
	}

	now := time.Now()
	session, err := h.learning.StartSession(r.Context(), opts, now)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	token, err := h.signer.Sign(session.ID, now)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "failed to sign session token", err)
		return
	}

	respondJSON(w, http.StatusCreated, startSessionResponse{Session: session, Token: token})
}

type currentCardResponse struct {
	Card      *models.Card `json:"card,omitempty"`
	Completed bool         `json:"completed"`
	Position  int          `json:"position"`
	PlanSize  int          `json:"planSize"`
}

// CurrentCard handles GET /api/session/current: the card the session expects
// to be rated next, or the completed flag when the plan is exhausted.
func (h *APIHandler) CurrentCard(w http.ResponseWriter, r *http.Request) {
	session, err := h.learning.ActiveSession(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if session == nil {
		respondWithDomainError(w, service.ErrNoActiveSession)
		return
	}

	resp := currentCardResponse{
		Completed: session.IsComplete(),
		Position:  session.CurrentIndex,
		PlanSize:  len(session.Plan),
	}

	if !resp.Completed {
		card, ok, err := h.learning.CurrentCard(r.Context())
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		if ok {
			resp.Card = &card
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

type rateCardRequest struct {
	ItemID string        `json:"itemId"`
	Rating models.Rating `json:"rating"`
}

// RateCard handles POST /api/session/rate: rate the current card and advance
// the session as one atomic step.
func (h *APIHandler) RateCard(w http.ResponseWriter, r *http.Request) {
	var req rateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" {
		respondWithError(w, http.StatusBadRequest, "itemId and rating are required", "", err)
		return
	}

	result, err := h.learning.RateCurrentAndAdvance(r.Context(), req.ItemID, req.Rating, time.Now())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// EndSession handles POST /api/session/end: discard the session in progress
// and report a summary of what was reviewed.
func (h *APIHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	summary, err := h.learning.EndSession(r.Context(), time.Now())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
