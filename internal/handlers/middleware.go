package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"hanzirecall/internal/credentials"
	"hanzirecall/internal/service"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	signer   *credentials.TokenSigner
	learning *service.LearningService
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(signer *credentials.TokenSigner, learning *service.LearningService) *Middleware {
	return &Middleware{signer: signer, learning: learning}
}

// RequireSessionToken guards session-mutating endpoints. The bearer token
// must verify and must name the session currently in progress, so a page
// still holding a token for a replaced or completed session cannot advance
// the plan cursor.
func (m *Middleware) RequireSessionToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondWithError(w, http.StatusUnauthorized, "missing session token", "", nil)
			return
		}

		sessionID, err := m.signer.Verify(token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "invalid session token", "", err)
			return
		}

		session, err := m.learning.ActiveSession(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "internal error", "failed to load session", err)
			return
		}
		if session == nil || session.ID != sessionID {
			respondWithError(w, http.StatusUnauthorized, "session token does not match the active session", "", nil)
			return
		}

		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Call next handler
		next.ServeHTTP(w, r)

		// Log request
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
