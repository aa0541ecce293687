package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "APP_ENV", "LOG_LEVEL", "DATABASE_DRIVER", "DATABASE_DSN",
		"JWT_SECRET", "JWT_TTL", "BCRYPT_COST", "WEATHER_API_URL", "WEATHER_API_KEY",
		"WEATHER_TIMEOUT", "RABBITMQ_URL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 60*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 10*time.Second, cfg.WeatherTimeout)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5/weather", cfg.WeatherAPIURL)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", ":9000")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=localhost user=app dbname=weather")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("WEATHER_API_KEY", "owm-key")
	t.Setenv("WEATHER_TIMEOUT", "2s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, "owm-key", cfg.WeatherAPIKey)
	assert.Equal(t, 2*time.Second, cfg.WeatherTimeout)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("WEATHER_API_KEY=from-file\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("WEATHER_API_KEY")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.WeatherAPIKey)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "default secret in production",
			env:     map[string]string{"APP_ENV": "production"},
			wantErr: "JWT_SECRET must be set in production environment",
		},
		{
			name:    "unsupported driver",
			env:     map[string]string{"DATABASE_DRIVER": "mysql"},
			wantErr: `unsupported DATABASE_DRIVER "mysql"`,
		},
		{
			name:    "non-positive token lifetime",
			env:     map[string]string{"JWT_TTL": "0s"},
			wantErr: "JWT_TTL must be positive",
		},
		{
			name:    "non-positive weather timeout",
			env:     map[string]string{"WEATHER_TIMEOUT": "-1s"},
			wantErr: "WEATHER_TIMEOUT must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ProductionWithSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
