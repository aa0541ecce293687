package openweather

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultURL is the OpenWeatherMap current weather endpoint.
const DefaultURL = "https://api.openweathermap.org/data/2.5/weather"

// Config holds OpenWeatherMap connection details.
type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Client queries the current weather for a city.
// Every call makes exactly one request bounded by Timeout; there are no retries.
type Client struct {
	url     string
	apiKey  string
	timeout time.Duration
}

// CurrentWeather is the subset of the provider payload the API uses.
type CurrentWeather struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []Condition `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Condition is one entry of the provider's "weather" array.
type Condition struct {
	Description string `json:"description"`
}

// APIError is a non-2xx answer from the provider.
type APIError struct {
	StatusCode int
	Message    string // provider "message" field, empty when absent
}

func (e *APIError) Error() string {
	return fmt.Sprintf("weather provider responded %d: %s", e.StatusCode, e.Message)
}

// TransportError means no response was received (timeout, refused connection, DNS).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewClient creates a new OpenWeatherMap client.
func NewClient(cfg Config) *Client {
	url := cfg.URL
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:     url,
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
	}
}

// CurrentWeather fetches the current weather for city in metric units.
func (c *Client) CurrentWeather(city string) (*CurrentWeather, error) {
	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("q", city)
	args.Set("appid", c.apiKey)
	args.Set("units", "metric")

	agent := fiber.Get(c.url).QueryStringBytes(args.QueryString())
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, &TransportError{Err: errors.Join(errs...)}
	}

	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		var payload struct {
			Message string `json:"message"`
		}
		// A non-JSON error body just leaves Message empty.
		_ = json.Unmarshal(body, &payload)
		return nil, &APIError{StatusCode: status, Message: payload.Message}
	}

	var weather CurrentWeather
	if err := json.Unmarshal(body, &weather); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	return &weather, nil
}
