package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/waypoint-app/waypoint/internal/config"
	"github.com/waypoint-app/waypoint/internal/connect"
	"github.com/waypoint-app/waypoint/internal/container"
	"github.com/waypoint-app/waypoint/internal/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	logger.Info("Starting Waypoint API server", "environment", cfg.Environment, "auth_mode", cfg.AuthMode)

	// Open database and migrate schema
	db, err := connect.Open(cfg.DatabaseDSN)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database", "dsn", cfg.DatabaseDSN)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Error("Failed to create upload directory", "error", err)
		os.Exit(1)
	}

	// Initialize dependency container
	appContainer, err := container.NewContainer(logger, cfg, db)
	if err != nil {
		logger.Error("Failed to build container", "error", err)
		os.Exit(1)
	}

	// Setup routes
	router := routes.SetupRoutes(appContainer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Close database connection
	if err := connect.Close(db); err != nil {
		logger.Error("Error closing database", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}
