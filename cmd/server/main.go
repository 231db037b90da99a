package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nmwangi/contract-risk-api/internal/analyzer"
	"github.com/nmwangi/contract-risk-api/internal/config"
	"github.com/nmwangi/contract-risk-api/internal/db"
	"github.com/nmwangi/contract-risk-api/internal/repository"
	"github.com/nmwangi/contract-risk-api/internal/router"
	"github.com/nmwangi/contract-risk-api/internal/services"
	"github.com/nmwangi/contract-risk-api/internal/storage"
	"github.com/nmwangi/contract-risk-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.LogLevel)

	database, err := db.NewSQLiteDB(cfg.DatabaseFile)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	defer database.Close()

	if err := db.RunMigrations(cfg.DatabaseFile); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	s3Storage, err := storage.NewS3Storage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize S3 storage", "error", err)
	}

	// The analyzer is optional: without a key the service still works and
	// returns rule-based results with a fallback narrative.
	var llmAnalyzer analyzer.Analyzer
	if cfg.GeminiAPIKey != "" {
		llmAnalyzer = analyzer.NewGeminiAnalyzer(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel, logger)
	} else {
		logger.Warn("GEMINI_API_KEY not set, AI analysis disabled")
	}

	contractRepo := repository.NewRepository(database)
	contractService := services.NewService(contractRepo, s3Storage, llmAnalyzer, logger)

	handler := router.NewRouter(contractService, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
