package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hanzirecall/internal/config"
	"hanzirecall/internal/credentials"
	"hanzirecall/internal/handlers"
	"hanzirecall/internal/repository"
	"hanzirecall/internal/service"
	"hanzirecall/internal/storage"
)

func main() {
	// Load .env if present; real environment variables take precedence
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize storage with config (supports sqlite, postgres, mysql)
	kv, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer kv.Close()

	log.Printf("Storage connection established (type: %s)", cfg.DatabaseType)

	// Initialize repositories
	cardRepo := repository.NewCardRepository(kv)
	sessionRepo := repository.NewSessionRepository(kv)

	// Initialize services
	learningService := service.NewLearningService(cardRepo, sessionRepo)
	signer := credentials.NewTokenSigner(cfg.TokenSecret)

	// Initialize handlers
	middleware := handlers.NewMiddleware(signer, learningService)
	apiHandler := handlers.NewAPIHandler(learningService, signer)

	// Setup routes
	mux := http.NewServeMux()

	// Card routes
	mux.HandleFunc("POST /api/cards", apiHandler.AddCard)
	mux.HandleFunc("GET /api/cards", apiHandler.ListCards)
	mux.HandleFunc("DELETE /api/cards/{itemId}", apiHandler.RemoveCard)
	mux.HandleFunc("POST /api/cards/{itemId}/reset", apiHandler.ResetCard)

	// Stats
	mux.HandleFunc("GET /api/stats", apiHandler.GetStats)

	// Session routes
	mux.HandleFunc("POST /api/session/start", apiHandler.StartSession)
	mux.HandleFunc("GET /api/session/current", apiHandler.CurrentCard)
	mux.HandleFunc("POST /api/session/rate", middleware.RequireSessionToken(apiHandler.RateCard))
	mux.HandleFunc("POST /api/session/end", middleware.RequireSessionToken(apiHandler.EndSession))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}
