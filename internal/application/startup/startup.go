// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BiblioNova/bookhaven-go/internal/application/container"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/persistence/database"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/security"
	"github.com/BiblioNova/bookhaven-go/internal/presentation/http/server"
	"github.com/BiblioNova/bookhaven-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// Initialize performs the complete portal startup sequence
func Initialize() error {
	setupGin()

	start := time.Now().UTC()

	log.Println("BookHaven portal service starting...")

	// Step 1: Session tokens need a signing secret; generate an ephemeral
	// one when none is configured (sessions then only last one run).
	if config.JWTSecret == "" {
		secret, err := security.GenerateSecureKey(64)
		if err != nil {
			return fmt.Errorf("failed to generate session signing secret: %w", err)
		}
		config.JWTSecret = secret
		log.Println("No JWT_SECRET configured - generated an ephemeral signing secret")
	}

	// Step 2: Initialize the channeled logger
	loggerConfig := logging.DefaultLoggerConfig()
	loggerConfig.OutputToFile = config.LogToFile
	loggerConfig.JSONFormat = config.LogJSONFormat
	loggerConfig.LogDirectory = config.LogDirectory
	if config.VerboseLogging {
		loggerConfig.DefaultLevel = slog.LevelDebug
	}

	logger, err := logging.NewChanneledLogger(loggerConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Close()

	// The debug channel only surfaces in verbose runs.
	if !config.VerboseLogging {
		if err := logger.SetChannelLevel(logging.ChannelDebug, slog.LevelWarn); err != nil {
			return fmt.Errorf("failed to configure debug channel: %w", err)
		}
	}
	logger.Startup().Info("Channeled logging initialized")

	// Step 3: Open the collection store
	logger.Startup().Info("Opening collection store...", "path", config.DBPath)
	db, err := database.NewConnectionWithLogger(config.DBPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open collection store: %w", err)
	}
	defer db.Close()

	// Step 4: Create dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer, err := container.NewContainer(db, logger)
	if err != nil {
		return fmt.Errorf("container initialization failed: %w", err)
	}
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 5: Restore any persisted session before serving requests
	appContainer.SessionService.RestoreSession()

	// Step 6: Start HTTP server
	httpServer := server.New(config.Port, appContainer)
	logger.Startup().Info("HTTP server initialized", "port", config.Port)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+config.Port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", config.Port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(context.Background()); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupGin configures the framework's run mode
func setupGin() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
}
