package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"sales-activity-backend/config"
	"sales-activity-backend/internal/middleware"
	"sales-activity-backend/internal/routes"
)

func main() {
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.ConnectRedis(ctx, cfg, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	app := fiber.New()

	// Global middleware
	app.Use(cors.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.RequestID(logger))

	routes.Setup(app, routes.NewContainer(cfg, db, rdb, logger))

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		_ = app.Shutdown()
	}()

	logger.WithField("port", cfg.Port).Info("server ready")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
