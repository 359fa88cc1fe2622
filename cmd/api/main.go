package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"promptforge/internal/config"
	"promptforge/internal/enhancer"
	"promptforge/internal/http"
	"promptforge/internal/llm"
	"promptforge/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances; the collection repo needs the prompt repo
	// for cascading deletes and counts.
	promptRepo := storage.NewSavedPromptRepo(db)
	collectionRepo := storage.NewCollectionRepo(db, promptRepo)

	// Create LLM client (external service layer) and enhancement service
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	cache := enhancer.NewCache()
	enhancerService := enhancer.NewService(llmClient, cache)
	slog.Info("Enhancement service initialized", "model", cfg.LLMModelName)

	// Create router with dependencies
	deps := &http.Deps{
		Enhancer:    enhancerService,
		Cache:       cache,
		Collections: collectionRepo,
		Prompts:     promptRepo,
		DB:          db,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
