package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Abdallah-SE/academy-learning-sub001/internal/app"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/config"
)

func main() {
	// Missing .env is fine; deployments set real environment variables.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	if err := app.Run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
