package main

import (
	"log"

	"mirror-mirror/internal/app"
	"mirror-mirror/internal/config"
	"mirror-mirror/internal/logger"
)

func main() {
	cfg := config.Load()

	appLogger := logger.NewConsoleLogger(logger.ParseLevel(cfg.LogLevel))

	application, err := app.NewApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("application initialization failed: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application execution failed: %v", err)
	}
}
