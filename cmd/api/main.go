// Command api is the Prode Bracket Engine API server.
//
// Usage:
//
//	prode-api
//	API_PORT=8080 TOURNAMENTS_DIR=./tournaments prode-api

// @title Prode Bracket Engine API
// @version 1.0.0
// @description Tournament bracket resolution API. Computes group standings, playoff slot assignments, and third-place qualifiers from official results or user guesses. Tournament definitions are plain JSON documents loaded at startup; nothing is persisted.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/prodeapp/engine/internal/api"
	"github.com/prodeapp/engine/internal/cache"
	"github.com/prodeapp/engine/internal/config"
	"github.com/prodeapp/engine/internal/tournament"

	_ "github.com/prodeapp/engine/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Load the tournament catalog
	logger.Info("Loading tournament catalog...", "dir", cfg.CatalogDir)
	catalog, err := tournament.LoadDir(ctx, cfg.CatalogDir, logger)
	if err != nil {
		logger.Error("Failed to load tournament catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("Catalog loaded", "tournaments", catalog.Len())

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Create router
	router := api.NewRouter(catalog, appCache, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Prode Bracket Engine API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
