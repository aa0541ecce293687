package models

// WeatherSnapshot is the normalized current weather for a city. It is never persisted.
type WeatherSnapshot struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"` // Celsius
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"` // percent
	WindSpeed   float64 `json:"wind_speed"`
}
