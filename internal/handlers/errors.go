package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"hanzirecall/internal/models"
	"hanzirecall/internal/repository"
	"hanzirecall/internal/service"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// errorResponse is the JSON body for all error responses.
type errorResponse struct {
	Error string `json:"error"`
}

// respondWithError logs the underlying error and writes a JSON error body.
func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, errorResponse{Error: userMsg})
}

// respondWithDomainError maps the core's error taxonomy to HTTP status codes.
// Every failure is recoverable by the caller; nothing here retries.
func respondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "card not found", "", err)
	case errors.Is(err, service.ErrNoActiveSession):
		respondWithError(w, http.StatusNotFound, "no active session", "", err)
	case errors.Is(err, service.ErrCardMismatch):
		respondWithError(w, http.StatusConflict, "rated card is not the current card", "", err)
	case errors.Is(err, models.ErrInvalidRating):
		respondWithError(w, http.StatusBadRequest, "rating must be between 1 and 4", "", err)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal error", "request failed", err)
	}
}
