package main

import (
	"os"
	"os/signal"
	"syscall"

	"weatherapi/internal/config"
	"weatherapi/internal/database"
	"weatherapi/internal/logger"
	"weatherapi/internal/models"
	"weatherapi/internal/repositories"
	"weatherapi/internal/server"
	"weatherapi/internal/services"
	"weatherapi/pkg/openweather"
	"weatherapi/pkg/rabbitmq"

	"github.com/rs/zerolog/log"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logger.Setup("info", true)
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Setup(cfg.LogLevel, !cfg.IsProduction())

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("Failed to open database")
	}
	userRepo := repositories.NewGORMUserRepository(db)

	// --- RabbitMQ (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, user events disabled")
		} else {
			defer mqClient.Close()
			events = mqClient
			startUserEventConsumer(mqClient)
		}
	}

	// --- Services ---
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	userService := services.NewUserService(userRepo, services.NewBcryptHasher(cfg.BcryptCost), tokenService, events)
	weatherService := services.NewWeatherService(openweather.NewClient(openweather.Config{
		URL:     cfg.WeatherAPIURL,
		APIKey:  cfg.WeatherAPIKey,
		Timeout: cfg.WeatherTimeout,
	}))

	app := server.New(server.Deps{
		Users:   userService,
		Weather: weatherService,
		Tokens:  tokenService,
	})

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.AppPort).Str("env", cfg.AppEnv).Msg("Starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Error during Fiber shutdown")
	}
	log.Info().Msg("Server gracefully stopped")
}

// startUserEventConsumer logs user lifecycle events as they arrive.
func startUserEventConsumer(mqClient *rabbitmq.Client) {
	err := mqClient.ConsumeUserEvents(func(event models.UserEvent) error {
		log.Info().
			Str("event", string(event.Type)).
			Str("user_id", event.UserID).
			Time("occurred_at", event.OccurredAt).
			Msg("Received user event")
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to start user event consumer")
	}
}
