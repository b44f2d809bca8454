package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akozlova/studycards/internal/ai"
	"github.com/akozlova/studycards/internal/api"
	"github.com/akozlova/studycards/internal/auth"
	"github.com/akozlova/studycards/internal/config"
	"github.com/akozlova/studycards/internal/db"
	"github.com/akozlova/studycards/internal/logger"
	"github.com/akozlova/studycards/internal/services"
	"github.com/akozlova/studycards/internal/storage"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("StudyCards Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("ai_url=%s", cfg.AIURL)
	log.Debug("ai_model=%s", cfg.AIModel)
	log.Debug("ai_timeout_seconds=%d", cfg.AITimeoutSeconds)
	log.Debug("upload_dir=%s", cfg.UploadDir)
	log.Debug("archive_uploads=%t", cfg.ArchiveUploads)
	log.Debug("max_upload_mb=%d", cfg.MaxUploadMB)

	aiConfigured := cfg.AIAPIKey != ""
	if !aiConfigured {
		log.Warn("OPENROUTER_API_KEY is not set, uploads will be rejected")
	}

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	aiTimeout := time.Duration(cfg.AITimeoutSeconds) * time.Second
	client := ai.NewClient(cfg.AIURL, cfg.AIAPIKey, cfg.AIModel, ai.WithTimeout(aiTimeout))
	generator := ai.NewGenerator(client)
	store := storage.NewStore(cfg.UploadDir, cfg.ArchiveUploads)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	// Initialize services
	authService := services.NewAuthService(database, tokens)
	deckService := services.NewDeckService(database)
	cardService := services.NewCardService(database)
	generationService := services.NewGenerationService(database, store, generator, aiConfigured, aiTimeout)
	sessionService := services.NewSessionService(database)
	statsService := services.NewStatsService(database)

	srv := &api.Server{
		Auth:         authService,
		Decks:        deckService,
		Cards:        cardService,
		Generation:   generationService,
		Sessions:     sessionService,
		Stats:        statsService,
		Tokens:       tokens,
		AIConfigured: aiConfigured,
		MaxUploadMB:  cfg.MaxUploadMB,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * aiTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("StudyCards Server Stopped")
	log.Info("===========================================")
}
