package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"sales-activity-backend/config"
	"sales-activity-backend/internal/database"
)

func main() {
	fmt.Println("Starting database seeding...")

	// Separate binary, so load .env here as well
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env not found, using system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.LogLevel)

	db, err := config.ConnectDB(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("database unavailable")
	}

	if err := database.SeedAll(db, logger); err != nil {
		logger.WithError(err).Fatal("seeding failed")
	}
	fmt.Println("Seeding finished.")
}
