package main

import (
	"os"
	"os/signal"
	"syscall"

	"donation-api/internal/app"
	"donation-api/internal/config"
	"donation-api/internal/database"
	"donation-api/internal/logging"
	"donation-api/internal/services"
	"donation-api/pkg/rabbitmq"

	"github.com/rs/zerolog/log"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet; the default global logger still writes JSON.
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	// --- Domain events (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		events = mqClient

		if err := mqClient.ConsumeEvents(rabbitmq.LogAuditEvent); err != nil {
			log.Error().Err(err).Msg("failed to start audit consumer")
		}
	} else {
		log.Warn().Msg("RABBITMQ_URL not set, domain events are disabled")
	}

	application, err := app.New(cfg, db, events)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build application")
	}

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", cfg.AppPort).Msg("starting server")
		if err := application.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")

	if err := application.Fiber.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during Fiber shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info().Msg("server gracefully stopped")
}
