package services

import (
	"errors"
	"fmt"

	"weatherapi/internal/models"
	"weatherapi/pkg/openweather"
)

// WeatherProvider looks up the current weather for a city.
type WeatherProvider interface {
	CurrentWeather(city string) (*openweather.CurrentWeather, error)
}

// WeatherService translates a user's city into a normalized WeatherSnapshot.
type WeatherService struct {
	provider WeatherProvider
}

// NewWeatherService creates a new WeatherService.
func NewWeatherService(provider WeatherProvider) *WeatherService {
	return &WeatherService{
		provider: provider,
	}
}

// FetchForUser returns the current weather for the user's city.
// Users without a city fail with ErrNoCityConfigured before any outbound call.
func (s *WeatherService) FetchForUser(user *models.User) (*models.WeatherSnapshot, error) {
	if user == nil || !user.HasCity() {
		return nil, ErrNoCityConfigured
	}
	city := *user.City

	current, err := s.provider.CurrentWeather(city)
	if err != nil {
		var apiErr *openweather.APIError
		var transportErr *openweather.TransportError
		switch {
		case errors.As(err, &apiErr):
			msg := apiErr.Message
			if msg == "" {
				msg = "Weather API error"
			}
			return nil, &ProviderError{StatusCode: apiErr.StatusCode, Message: msg}
		case errors.As(err, &transportErr):
			return nil, &FetchError{Err: transportErr.Err}
		}
		return nil, fmt.Errorf("failed to read weather for %s: %w", city, err)
	}

	if len(current.Weather) == 0 {
		return nil, fmt.Errorf("weather response for %s has no conditions", city)
	}

	return &models.WeatherSnapshot{
		City:        city,
		Temperature: current.Main.Temp,
		Description: current.Weather[0].Description,
		Humidity:    current.Main.Humidity,
		WindSpeed:   current.Wind.Speed,
	}, nil
}
