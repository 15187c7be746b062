// Package main implements the entry point for the Vortex API server,
// a vocabulary learning backend with spaced repetition scheduling,
// daily missions, streak tracking and achievements.
package main

import (
	"context"
	"log"

	"github.com/phrazzld/vortex-api/internal/config"
	"github.com/phrazzld/vortex-api/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)

	ctx := context.Background()

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to initialize application", "error", err)
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("server error", "error", err)
		log.Fatalf("Server error: %v", err)
	}
}
