package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "dev-secret-change-in-production"

// Config is the process configuration, read once at startup.
type Config struct {
	AppPort        string
	AppEnv         string
	LogLevel       string
	DatabaseDriver string
	DatabaseDSN    string
	JWTSecret      string
	JWTTTL         time.Duration
	BcryptCost     int
	WeatherAPIURL  string
	WeatherAPIKey  string
	WeatherTimeout time.Duration
	RabbitMQURL    string // empty disables user events
}

// IsProduction reports whether APP_ENV is "production".
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads an optional .env file and then the environment.
// envFiles defaults to ".env"; a missing file is not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded, using environment variables")
	}

	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "weatherapi.db")
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_TTL", "60m")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("WEATHER_API_URL", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("WEATHER_API_KEY", "")
	v.SetDefault("WEATHER_TIMEOUT", "10s")
	v.SetDefault("RABBITMQ_URL", "")
	v.AutomaticEnv()

	cfg := Config{
		AppPort:        v.GetString("APP_PORT"),
		AppEnv:         v.GetString("APP_ENV"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTTTL:         v.GetDuration("JWT_TTL"),
		BcryptCost:     v.GetInt("BCRYPT_COST"),
		WeatherAPIURL:  v.GetString("WEATHER_API_URL"),
		WeatherAPIKey:  v.GetString("WEATHER_API_KEY"),
		WeatherTimeout: v.GetDuration("WEATHER_TIMEOUT"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production environment")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.WeatherTimeout <= 0 {
		return fmt.Errorf("WEATHER_TIMEOUT must be positive, got %s", c.WeatherTimeout)
	}
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	return nil
}
